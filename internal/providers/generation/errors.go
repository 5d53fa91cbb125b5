package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindCredentials Kind = "credentials" // missing or rejected API key
	KindTransport   Kind = "transport"   // network, timeout or upstream error
	KindEmpty       Kind = "empty"       // the service answered without text
	KindUnavailable Kind = "unavailable" // circuit open or pacing refused
)

// User-facing failure messages.
const (
	MessageFailed = "Failed to generate blueprint. Please check your connection or API key."
	MessageEmpty  = "No analysis could be generated at this time."
)

// Error is the only error type a Generator returns. Message is safe to show
// to end users; Cause carries the technical detail.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generation %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("generation %s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, cause error) *Error {
	msg := MessageFailed
	if kind == KindEmpty {
		msg = MessageEmpty
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf returns the kind of a generation error, or "" if err is not one.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}

// UserMessage returns the message to display for err.
func UserMessage(err error) string {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return MessageFailed
}
