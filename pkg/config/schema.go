package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/prevet-config-v1.yaml
var configSchemaYAML []byte

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // e.g. "lint.disabled_checks"
	Message string `json:"message"`
}

// ValidationResult holds the schema validation outcome.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func compileSchema() (*gojsonschema.Schema, error) {
	// Convert the YAML schema to JSON for gojsonschema
	var schemaData interface{}
	if err := yaml.Unmarshal(configSchemaYAML, &schemaData); err != nil {
		return nil, fmt.Errorf("embedded schema is not valid YAML: %w", err)
	}
	jsonBytes, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("embedded schema conversion failed: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("embedded schema does not compile: %w", err)
	}
	return schema, nil
}

// ValidateDocument validates a decoded .prevet.yaml document against the
// embedded schema.
func ValidateDocument(data interface{}) (*ValidationResult, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &ValidationResult{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}
