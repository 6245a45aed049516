package response

import (
	"encoding/json"
	"net/http"
)

// Locations of a rejected value, reported in FieldError.Location.
const (
	LocationBody   = "body"
	LocationQuery  = "query"
	LocationParams = "params"
)

// FieldError describes one rejected input value.
type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Value    any    `json:"value"`
	Location string `json:"location"`
}

// ValidationError is returned when user input fails declared constraints.
// It reports 400 Bad Request and serializes as
// {"success":false,"message":...,"errors":[...]}.
type ValidationError struct {
	Message string
	Errors  []FieldError
}

// NewValidationError creates a validation error with the default message.
func NewValidationError(errs ...FieldError) ValidationError {
	return ValidationError{Message: "Validation failed", Errors: errs}
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Errors[0].Field + ": " + e.Errors[0].Message
}

// StatusCode reports 400 Bad Request.
func (e ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Field returns the first message recorded for field, or "".
func (e ValidationError) Field(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Fields returns the first message per field, for inline form errors.
func (e ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// MarshalJSON renders the client-facing envelope.
func (e ValidationError) MarshalJSON() ([]byte, error) {
	errs := e.Errors
	if errs == nil {
		errs = []FieldError{}
	}
	return json.Marshal(struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}{false, e.Message, errs})
}
