// errors/application_errors.go
package errors

import "errors"

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrApplicationConflict    = errors.New("application conflict")
	ErrInvalidApplicationData = errors.New("invalid application data")
)
