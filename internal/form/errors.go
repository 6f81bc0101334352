// Package form turns the raw string values of a report form into typed
// calculator inputs, applying the same formatting rules an input field
// enforces on blur.
package form

import (
	"fmt"

	"github.com/iwvelando/grain-loss/internal/calculator"
)

// FieldError reports a form value that could not be accepted.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %s: %q %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, calculator.ErrInvalidInput) succeed.
func (e *FieldError) Unwrap() error {
	return calculator.ErrInvalidInput
}

// Notice describes a value that was accepted after adjustment.
type Notice struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
