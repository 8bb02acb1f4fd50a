package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses one YAML tree document, validates it against the schema
// and converts it into a domain tree. name is used in error messages.
func DecodeYAML(name string, data []byte) (*domain.Tree, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: invalid yaml: %w", name, err)
	}

	// Normalize YAML values (ints, nested maps) to the JSON model the schema validator expects.
	normalized, err := toJSONValue(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if err := validateSchema(normalized); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var doc TreeDocument
	if err := DecodeMap(normalized, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tree, err := doc.ToTree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tree, nil
}

// DecodeMap decodes a generic map (YAML/JSON/frontmatter) into target using mapstructure tags.
// Unknown keys are rejected.
func DecodeMap(input any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		TagName:     "mapstructure",
		Result:      target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	return out, nil
}
