package extfilter

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter signals that a required filter parameter is absent.
	ErrMissingParameter = errors.New("missing filter parameter")
	// ErrFieldResolution signals that a logical field id could not be mapped to an indexed field.
	ErrFieldResolution = errors.New("field name resolution failed")
	// ErrUnknownFilter signals a filter id with no registered implementation.
	ErrUnknownFilter = errors.New("unknown extended attribute filter")
	// ErrDuplicateFilter signals a second registration under the same id.
	ErrDuplicateFilter = errors.New("extended attribute filter already registered")
)

// MissingParameterError names the absent parameter.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s %q", ErrMissingParameter.Error(), e.Name)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }
