package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned by Submit while another submission is being
	// validated or sent.
	ErrInFlight = errors.New("contact: submission already in flight")

	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("contact: controller closed")
)

// Validation failure reasons.
const (
	ReasonMissingName    = "missing name"
	ReasonInvalidEmail   = "invalid email"
	ReasonMissingMessage = "missing message"
)

// ValidationError is a locally detected problem with the form values. It is
// deterministic: resubmitting without editing fails the same way.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "contact: " + e.Reason
}

// TransportError wraps a failure of the mail relay. The form values are kept
// so the visitor can resubmit.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact: send failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
