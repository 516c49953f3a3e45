package specgen

import (
	"os"
	"path/filepath"
	"strings"
)

func LoadSpecFile(path string) (*SpecFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ParseError(path, "read spec file", err)
	}
	return ParseSpecFile(path, raw)
}

// ParseSpecFile decodes raw as YAML for .yml/.yaml paths and as JSON
// otherwise.
func ParseSpecFile(path string, raw []byte) (*SpecFile, error) {
	var (
		doc Value
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		doc, err = DecodeYAML(raw)
	default:
		doc, err = DecodeJSON(raw)
	}
	if err != nil {
		return nil, ParseError(path, "decode spec file", err)
	}
	return &SpecFile{Path: path, Stem: FileStem(path), Doc: doc}, nil
}

// FileStem returns the base name of path without its extension. Leading
// dots are part of the name, so ".json" keeps ".json" as its stem.
func FileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return strings.TrimSuffix(base, ext)
}
