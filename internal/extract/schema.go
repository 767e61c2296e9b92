package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildCardJSONSchema returns the JSON-Schema the cleaned field map is
// validated against before it leaves the extraction service: keys are
// normalized snake_case, values are non-empty strings.
func BuildCardJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"propertyNames": map[string]any{
			"pattern": `^[a-z0-9_/]+$`,
		},
		"additionalProperties": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	}
}

// ValidateFields validates a field map against schemaMap.
func ValidateFields(schemaMap map[string]any, fields FieldMap) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal fields: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("fields do not match schema: %w", err)
	}
	return nil
}
