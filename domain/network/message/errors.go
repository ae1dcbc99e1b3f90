package message

import "errors"

// ErrMalformedMessage is wrapped by every decoding error.
var ErrMalformedMessage = errors.New("malformed message")

var (
	ErrShortMessage      = malformed("message too short")
	ErrIncompletePayload = malformed("incomplete payload")
	ErrUnknownKind       = malformed("unknown message kind")
)

type malformedError struct {
	reason string
}

func malformed(reason string) error {
	return &malformedError{reason: reason}
}

func (e *malformedError) Error() string {
	return ErrMalformedMessage.Error() + ": " + e.reason
}

func (e *malformedError) Unwrap() error {
	return ErrMalformedMessage
}
