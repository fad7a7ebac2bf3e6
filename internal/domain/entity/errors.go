package entity

import (
	"fmt"
	"strings"
)

// ValidationError reports a field that broke a domain rule. The HTTP
// layer renders it as a 422 with the field name in the error details.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "can't be blank"}
	}
	return nil
}
