package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce sync.Once
	spec     *openapi3.T
	specErr  error
)

// Spec parses and validates the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			specErr = fmt.Errorf("failed to parse OpenAPI document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			specErr = fmt.Errorf("invalid OpenAPI document: %w", err)
			return
		}
		spec = doc
	})
	return spec, specErr
}
