// Package contact drives the contact form: it holds the field values,
// validates them, hands accepted submissions to a Transport and keeps a short
// lived notice describing the outcome.
package contact

import (
	"regexp"
	"strings"
)

// FieldID names one form field.
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldEmail   FieldID = "email"
	FieldMessage FieldID = "message"
)

// Fields holds the current form values.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// emailPattern accepts local@domain.tld where no part contains whitespace
// or another @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks name, email and message in that order and returns a
// *ValidationError for the first one that fails.
func (f Fields) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return &ValidationError{Reason: ReasonMissingName}
	case !emailPattern.MatchString(f.Email):
		return &ValidationError{Reason: ReasonInvalidEmail}
	case strings.TrimSpace(f.Message) == "":
		return &ValidationError{Reason: ReasonMissingMessage}
	}
	return nil
}

// IsZero reports whether every field is empty.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

func (f *Fields) set(id FieldID, value string) bool {
	switch id {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// Message is what a Transport delivers.
type Message struct {
	Name    string
	Email   string
	Message string
}

func (f Fields) message() Message {
	return Message{Name: f.Name, Email: f.Email, Message: f.Message}
}
