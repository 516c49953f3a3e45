package specgen

import (
	"encoding/json"
	"fmt"
	"io"
)

// Registry accumulates registered tests in traversal order. It is owned by
// a single generation pass and rendered once, after every file.
type Registry struct {
	entries []RegistryEntry
	idents  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{idents: map[string]string{}}
}

// Add appends test. Two tests whose stems sanitise to the same C identifier
// cannot both be compiled, so the second one is rejected.
func (r *Registry) Add(test GeneratedTest) error {
	if prev, ok := r.idents[test.Ident]; ok {
		return SchemaErrorf(test.File, test.Ordinal, "identifier %s already used by %s", test.Ident, prev)
	}
	r.idents[test.Ident] = test.Name
	r.entries = append(r.entries, RegistryEntry{
		Name:    test.Name,
		Ident:   test.Ident,
		File:    test.File,
		Ordinal: test.Ordinal,
	})
	return nil
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Entries() []RegistryEntry {
	return append([]RegistryEntry(nil), r.entries...)
}

// PrintRegistry writes the registry entries as indented JSON.
func PrintRegistry(w io.Writer, r *Registry) error {
	entries := r.Entries()
	if entries == nil {
		entries = []RegistryEntry{}
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if _, err := w.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
