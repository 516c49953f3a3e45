package specgen

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const testFuncTemplate = `static void
{{ .Ident }}(void)
{
{{ .Indent }}{{ .Entry }}({{ .Desc }}, {{ .Template }}, {{ .Data }}, {{ .Partials }}, {{ .Expected }});
}

`

const registryTemplate = `{{ .Table }} = {
{{- range .Rows }}
{{ $.Indent }}{ {{ quote .Name }}, {{ .Ident }} },
{{- end }}
{{ .Indent }}{ 0 }
};
`

// Emitter renders C source for generated tests and the registration table.
type Emitter struct {
	cfg      Config
	indent   string
	testTpl  *template.Template
	tableTpl *template.Template
}

func NewEmitter(cfg Config) (*Emitter, error) {
	funcs := template.FuncMap{
		"quote": QuoteC,
	}
	testTpl, err := template.New("test").Funcs(funcs).Parse(testFuncTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse test template: %w", err)
	}
	tableTpl, err := template.New("registry").Funcs(funcs).Parse(registryTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse registry template: %w", err)
	}
	return &Emitter{
		cfg:      cfg,
		indent:   strings.Repeat(" ", cfg.Indent),
		testTpl:  testTpl,
		tableTpl: tableTpl,
	}, nil
}

// EmitHeader writes the optional #include preamble.
func (e *Emitter) EmitHeader(w io.Writer) error {
	if e.cfg.Header == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "#include %s\n\n", QuoteC(e.cfg.Header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// EmitTest writes one test function calling the harness entry point with
// the five literal arguments of the test case.
func (e *Emitter) EmitTest(w io.Writer, test GeneratedTest) error {
	tc := test.Case
	data := map[string]any{
		"Ident":    test.Ident,
		"Indent":   e.indent,
		"Entry":    e.cfg.Entry,
		"Desc":     EscapeText(tc.Desc, e.cfg.Absent),
		"Template": QuoteC(tc.Template),
		"Data":     EscapeText(tc.Data, e.cfg.Absent),
		"Partials": EscapeText(tc.Partials, e.cfg.Absent),
		"Expected": QuoteC(tc.Expected),
	}
	if err := e.testTpl.Execute(w, data); err != nil {
		return fmt.Errorf("render %s: %w", test.Ident, err)
	}
	return nil
}

// EmitRegistry writes the registration table followed by its { 0 }
// sentinel row.
func (e *Emitter) EmitRegistry(w io.Writer, r *Registry) error {
	data := map[string]any{
		"Table":  e.cfg.Table,
		"Indent": e.indent,
		"Rows":   r.Entries(),
	}
	if err := e.tableTpl.Execute(w, data); err != nil {
		return fmt.Errorf("render registry: %w", err)
	}
	return nil
}
