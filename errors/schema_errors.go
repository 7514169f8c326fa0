// errors/schema_errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCredentialType   = errors.New("unknown credential type")
	ErrDuplicateCredentialType = errors.New("credential type already registered")
)

// UnknownFieldError reports a condition leaf referencing a field path that
// is not declared for the policy's credential type.
type UnknownFieldError struct {
	Path           string // field path that failed to resolve
	CredentialType string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not declared for credential type %q", e.Path, e.CredentialType)
}
