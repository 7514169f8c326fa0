// errors/condition_errors.go
package errors

import "fmt"

// MalformedConditionError reports a structural fault in a condition
// document: an unknown operator, wrong combinator arity, a leaf without a
// field, and the like. Path locates the offending node within the document.
type MalformedConditionError struct {
	Path   string
	Reason string
}

func (e *MalformedConditionError) Error() string {
	return fmt.Sprintf("malformed condition at %s: %s", e.Path, e.Reason)
}

// TypeMismatchError reports an operator applied to a field whose declared
// type does not support it, or a literal that cannot be coerced to the
// field's declared type.
type TypeMismatchError struct {
	Path      string
	Field     string
	Operator  string
	FieldType string
	Reason    string
}

func (e *TypeMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("type mismatch at %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("type mismatch at %s: operator %q is not applicable to %s field %q",
		e.Path, e.Operator, e.FieldType, e.Field)
}
