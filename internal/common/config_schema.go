package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configJSONSchema describes the accepted config file keys, derived from the
// koanf tags of Config. Every section rejects keys it does not declare.
func configJSONSchema() map[string]any {
	return structSchema(reflect.TypeOf(Config{}))
}

func structSchema(t reflect.Type) map[string]any {
	props := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.Split(f.Tag.Get("koanf"), ",")[0]
		if key == "" {
			continue
		}
		if f.Type.Kind() == reflect.Struct {
			props[key] = structSchema(f.Type)
			continue
		}
		props[key] = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func compileConfigSchema() (*jsonschema.Schema, error) {
	b, err := json.Marshal(configJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	return compiler.Compile("config.json")
}

// validateConfigKeys checks the raw parsed config file. The map goes through
// a JSON round trip so YAML scalars reach the validator as JSON values.
func validateConfigKeys(raw map[string]any) error {
	schema, err := compileConfigSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
