package funcall

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for funcall. Use errors.Is to check.
var (
	ErrToolNotFound      = errors.New("tool not found")
	ErrDuplicateTool     = errors.New("tool already registered")
	ErrMalformedEnvelope = errors.New("malformed call envelope")
	ErrInvalidArguments  = errors.New("invalid tool arguments")

	// ErrPermissionDenied is the fixed, user-facing explanation for any refused,
	// cancelled, or failed authorization. It is deliberately distinct from decode
	// and lookup failures so the model can be told why the call did not happen.
	ErrPermissionDenied = errors.New("the user did not authorize this tool call")
)

// EnvelopeError reports a payload that carried a call under none of the
// accepted wire keys. Keys lists the keys that were attempted, for diagnostics.
type EnvelopeError struct {
	Keys []string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("malformed call envelope: no tool call under keys %s", strings.Join(e.Keys, ", "))
}

// Unwrap supports errors.Is(err, ErrMalformedEnvelope).
func (e *EnvelopeError) Unwrap() error { return ErrMalformedEnvelope }

// ArgumentError reports an argument payload that does not satisfy the tool's
// declared shape. Field is the offending parameter label, empty when the
// payload as a whole is unusable.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return "invalid arguments: " + e.Reason
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Unwrap supports errors.Is(err, ErrInvalidArguments).
func (e *ArgumentError) Unwrap() error { return ErrInvalidArguments }

// IsArgumentError returns true if err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// IsPermissionDenied returns true if err is or wraps ErrPermissionDenied.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
