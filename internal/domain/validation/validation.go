// Package validation provides a small rule engine for validating raw input maps.
// A Schema is an ordered list of field rules followed by cross-field rules.
// Every rule runs and every violation is collected; a cross-field rule is skipped
// when one of the fields it depends on has already been rejected.
package validation

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a field-level validation failure.
type ErrorKind string

// Error kinds reported by the built-in rules.
const (
	KindMissingField        ErrorKind = "missing_field"
	KindInvalidEnumValue    ErrorKind = "invalid_enum_value"
	KindInvalidDateFormat   ErrorKind = "invalid_date_format"
	KindConditionalRequired ErrorKind = "conditional_required_field"
	KindInvalidReference    ErrorKind = "invalid_reference"
)

// Input is a raw, untyped mapping such as a decoded form or JSON body.
type Input map[string]any

// Filled returns the value stored under key and whether it counts as filled.
// Absent keys, nil values and empty strings are not filled.
func (in Input) Filled(key string) (any, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}

// FieldError describes one violation on one field.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message,omitempty"`
}

// Error returns a formatted error message for the field error.
func (e FieldError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Kind)
}

// Errors is the ordered list of violations produced by a failed validation.
type Errors []FieldError

// Error joins every field error, implementing the error interface.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// For returns the errors reported on field, in rule order.
func (e Errors) For(field string) []FieldError {
	var out []FieldError
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// Has reports whether field has an error of the given kind.
func (e Errors) Has(field string, kind ErrorKind) bool {
	for _, fe := range e.For(field) {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// FieldRule checks a single field and, on success, writes its sanitized value into out.
// Check returns nil when the field is acceptable.
type FieldRule[T any] struct {
	Field string
	Check func(in Input, out *T) *FieldError
}

// CrossRule checks a relationship between fields on the sanitized value.
// It only runs when none of the fields in DependsOn have been rejected.
type CrossRule[T any] struct {
	Field     string
	DependsOn []string
	Check     func(in Input, out T) *FieldError
}

// Schema is an ordered rule set producing a sanitized T.
type Schema[T any] struct {
	Fields []FieldRule[T]
	Cross  []CrossRule[T]
}

// Result is the outcome of Schema.Validate: either a sanitized Value or a non-empty Errors list.
type Result[T any] struct {
	Value  T
	Errors Errors
}

// Success reports whether validation produced no errors.
func (r Result[T]) Success() bool {
	return len(r.Errors) == 0
}

// Validate runs every field rule, then every eligible cross rule, against in.
// Unknown keys in the input are ignored.
func (s Schema[T]) Validate(in Input) Result[T] {
	if in == nil {
		in = Input{}
	}

	var out T
	var errs Errors
	rejected := make(map[string]bool)

	record := func(field string, fe *FieldError) {
		if fe.Field == "" {
			fe.Field = field
		}
		errs = append(errs, *fe)
		rejected[fe.Field] = true
	}

	for _, rule := range s.Fields {
		if fe := rule.Check(in, &out); fe != nil {
			record(rule.Field, fe)
		}
	}

	for _, rule := range s.Cross {
		if rejected[rule.Field] || anyRejected(rejected, rule.DependsOn) {
			continue
		}
		if fe := rule.Check(in, out); fe != nil {
			record(rule.Field, fe)
		}
	}

	if len(errs) > 0 {
		return Result[T]{Errors: errs}
	}
	return Result[T]{Value: out}
}

func anyRejected(rejected map[string]bool, fields []string) bool {
	for _, f := range fields {
		if rejected[f] {
			return true
		}
	}
	return false
}
