package invocation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	JsonSchemaTypeObject  = "object"
	JsonSchemaTypeNumber  = "number"
	JsonSchemaTypeInteger = "integer"
	JsonSchemaTypeString  = "string"
	JsonSchemaTypeArray   = "array"
	JsonSchemaTypeBoolean = "boolean"
)

// Validator is implemented by tool inputs with constraints a JSON schema cannot express.
type Validator interface {
	Validate() error
}

// RequestParser decodes the raw arguments of a tool call into a typed input.
type RequestParser struct {
	Schema *jsonschema.Resolved
}

// NewRequestParser resolves schema once so that every call can be validated
// without re-resolving.
func NewRequestParser(schema *jsonschema.Schema) (*RequestParser, error) {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input schema: %w", err)
	}
	return &RequestParser{Schema: resolved}, nil
}

// Parse checks raw against the schema and decodes it into out, which must be a
// pointer. Every problem found is returned inside a single *ValidationError.
func (r *RequestParser) Parse(raw json.RawMessage, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		raw = json.RawMessage("{}")
	}

	var instance map[string]any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return NewValidationError(fmt.Errorf("invalid json object format: %w", err))
	}

	var problems []error
	problems = append(problems, missingRequired(instance, r.Schema.Schema())...)
	if len(problems) == 0 {
		if err := r.Schema.Validate(instance); err != nil {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return NewValidationError(err)
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return NewValidationError(err)
		}
	}

	return nil
}

// missingRequired reports each absent required property by name, so that
// callers see every missing field rather than only the first.
func missingRequired(instance map[string]any, schema *jsonschema.Schema) []error {
	var missing []string
	for _, name := range schema.Required {
		if _, ok := instance[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	errs := make([]error, 0, len(missing))
	for _, name := range missing {
		errs = append(errs, fmt.Errorf("missing required field: %s", name))
	}
	return errs
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
