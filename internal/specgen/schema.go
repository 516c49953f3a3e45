package specgen

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed spec.schema.json
var specSchemaJSON []byte

var (
	specSchema  *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

func compileSpecSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(specSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal spec schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("spec.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add spec schema resource: %w", err)
			return
		}
		specSchema, err = compiler.Compile("spec.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile spec schema: %w", err)
		}
	})
	return compileErr
}

// ValidateSpecDocument checks field types of a whole spec document.
func ValidateSpecDocument(doc Value) error {
	if err := compileSpecSchema(); err != nil {
		return err
	}
	return specSchema.Validate(doc.Interface())
}
