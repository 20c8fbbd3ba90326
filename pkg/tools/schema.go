package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
)

// prop is a named property of an input schema.
type prop struct {
	name     string
	schema   *jsonschema.Schema
	required bool
}

// object builds a closed object schema from props, in order.
func object(props ...prop) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 invocation.JsonSchemaTypeObject,
		Properties:           make(map[string]*jsonschema.Schema, len(props)),
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
	for _, p := range props {
		s.Properties[p.name] = p.schema
		if p.required {
			s.Required = append(s.Required, p.name)
		}
	}
	return s
}

func required(name string, s *jsonschema.Schema) prop {
	return prop{name: name, schema: s, required: true}
}

func optional(name string, s *jsonschema.Schema) prop {
	return prop{name: name, schema: s}
}

// str is a string property. Required strings must not be empty.
func str(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: invocation.JsonSchemaTypeString, Description: description}
}

func nonEmpty(description string) *jsonschema.Schema {
	s := str(description)
	s.MinLength = ptr.To(1)
	return s
}

func enum(description string, def string, values ...string) *jsonschema.Schema {
	s := str(description)
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	if def != "" {
		s.Default = mustJSON(def)
	}
	return s
}

func number(description string, min, max *float64, def *float64) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        invocation.JsonSchemaTypeNumber,
		Description: description,
		Minimum:     min,
		Maximum:     max,
	}
	if def != nil {
		s.Default = mustJSON(*def)
	}
	return s
}

func integer(description string, min, max *float64, def *int) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        invocation.JsonSchemaTypeInteger,
		Description: description,
		Minimum:     min,
		Maximum:     max,
	}
	if def != nil {
		s.Default = mustJSON(*def)
	}
	return s
}

func stringArray(description string, minItems int) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        invocation.JsonSchemaTypeArray,
		Description: description,
		Items:       str(""),
	}
	if minItems > 0 {
		s.MinItems = ptr.To(minItems)
	}
	return s
}

func withDefault(s *jsonschema.Schema, def any) *jsonschema.Schema {
	s.Default = mustJSON(def)
	return s
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
