package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaID = "schema://troubleshoot/tree"

var (
	schemaOnce     sync.Once
	schemaBytes    []byte
	schemaCompiled *jsonschemav5.Schema
	schemaErr      error
)

// Schema returns the JSON Schema of a tree document.
func Schema() ([]byte, error) {
	if err := compileSchema(); err != nil {
		return nil, err
	}
	return schemaBytes, nil
}

func compileSchema() error {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{}
		reflector.RequiredFromJSONSchemaTags = true
		schema := reflector.Reflect(&TreeDocument{})
		schema.Title = "Troubleshooting decision tree"

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			schemaErr = fmt.Errorf("failed to marshal JSON schema: %w", err)
			return
		}

		compiler := jsonschemav5.NewCompiler()
		if err := compiler.AddResource(schemaID, bytes.NewReader(data)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiled, err := compiler.Compile(schemaID)
		if err != nil {
			schemaErr = fmt.Errorf("failed to compile tree schema: %w", err)
			return
		}

		schemaBytes = data
		schemaCompiled = compiled
	})
	return schemaErr
}

// validateSchema checks a JSON-compatible value against the tree schema.
func validateSchema(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}
	if err := schemaCompiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateDocument checks an already decoded document against the tree schema,
// for sources that do not start from YAML.
func ValidateDocument(doc *TreeDocument) error {
	// Round-trip through JSON so the validator sees plain maps and slices.
	normalized, err := toJSONValue(doc)
	if err != nil {
		return err
	}
	return validateSchema(normalized)
}
