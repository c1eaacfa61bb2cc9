package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
)

// ColumnPatterns constrains the columns whose content has a known shape.
// Extracted fields may be empty; the report date may not.
var ColumnPatterns = map[string]string{
	constants.ColDate:           `^\d{2}/\d{2}/\d{4}$`,
	constants.ColTripTicket:     `^\d*$`,
	constants.ColFreightInvoice: `^\d*$`,
	constants.ColManifestNumber: `^(\d{6})?$`,
	constants.ColManifestTime:   `^(\d{2}:\d{2}:\d{2})?$`,
	constants.ColInvoiceNumbers: `^(\d+(/\d+)*)?$`,
}

// BuildRecordJSONSchema returns a JSON-Schema requiring every column as a
// string, applying ColumnPatterns and rejecting unknown keys.
func BuildRecordJSONSchema(columns []string) map[string]any {
	props := make(map[string]any, len(columns))
	required := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := props[c]; ok {
			continue
		}
		prop := map[string]any{"type": "string"}
		if p, ok := ColumnPatterns[c]; ok {
			prop["pattern"] = p
		}
		props[c] = prop
		required = append(required, c)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateRow checks a column->value row against the compiled schema.
func validateRow(schema *jsonschema.Schema, row map[string]string) error {
	v := make(map[string]any, len(row))
	for k, val := range row {
		v[k] = val
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
