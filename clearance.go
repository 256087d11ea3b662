package funcall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Clearance is the authorization tier gating a tool's execution.
type Clearance string

const (
	// ClearanceRegular tools run without user interaction.
	ClearanceRegular Clearance = "regular"
	// ClearanceSensitive tools require an explicit user confirmation.
	ClearanceSensitive Clearance = "sensitive"
	// ClearanceDangerous tools require strong-identity verification
	// (e.g. device-owner authentication).
	ClearanceDangerous Clearance = "dangerous"
)

// Valid reports whether c is one of the three clearance tiers.
func (c Clearance) Valid() bool {
	switch c {
	case ClearanceRegular, ClearanceSensitive, ClearanceDangerous:
		return true
	}
	return false
}

// Authorizer is the external collaborator that obtains user consent. The
// host substitutes whatever native prompt or credential mechanism it has
// (dialog, biometric subsystem, chat reply). Implementations should honor
// ctx cancellation; the Gate does not trust them to and guards the wait
// itself.
type Authorizer interface {
	// Confirm presents message to the user and reports explicit approval.
	Confirm(ctx context.Context, message string) (bool, error)
	// StrongAuthenticate verifies the device owner's identity and reports
	// success. Unavailability of the mechanism is a failed verification.
	StrongAuthenticate(ctx context.Context, message string) (bool, error)
}

// Gate enforces the three-tier clearance policy before a handler runs.
// A nil Gate, or a Gate without an Authorizer, denies everything above
// ClearanceRegular.
type Gate struct {
	auth    Authorizer
	timeout time.Duration
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithConfirmTimeout bounds the wait for a confirmation or authentication
// response. Zero (the default) waits until the caller's ctx is done.
func WithConfirmTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		g.timeout = d
	}
}

// NewGate creates a Gate backed by auth.
func NewGate(auth Authorizer, opts ...GateOption) *Gate {
	g := &Gate{auth: auth}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize applies the clearance policy to one call. summary must carry the
// literal tool name and a human-readable rendering of the arguments (see
// callSummary) so the user can make an informed decision. Refusal, failure,
// cancellation, and timeout all return an error wrapping ErrPermissionDenied;
// the handler must not run in any of those cases.
func (g *Gate) Authorize(ctx context.Context, c Clearance, summary string) error {
	if c == ClearanceRegular {
		return nil
	}
	if g == nil || g.auth == nil {
		return fmt.Errorf("%w: no authorizer configured", ErrPermissionDenied)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var ask func(context.Context, string) (bool, error)
	var message, refusal string
	switch c {
	case ClearanceSensitive:
		ask = g.auth.Confirm
		message = "Allow tool call " + summary + "?"
		refusal = "confirmation declined"
	case ClearanceDangerous:
		ask = g.auth.StrongAuthenticate
		message = "Confirm your identity to allow tool call " + summary
		refusal = "authentication failed"
	default:
		return fmt.Errorf("%w: unknown clearance %q", ErrPermissionDenied, c)
	}

	// The authorizer may block on a human who never answers. Run it on the
	// side and race it against ctx so dispatch stays cancellable.
	type answer struct {
		ok  bool
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		ok, err := ask(ctx, message)
		ch <- answer{ok: ok, err: err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			return fmt.Errorf("%w: %v", ErrPermissionDenied, a.err)
		}
		if !a.ok {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, refusal)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrPermissionDenied, ctx.Err())
	}
}

// callSummary renders "name(arguments)" with compacted argument JSON, for
// confirmation prompts and logs.
func callSummary(name string, args json.RawMessage) string {
	var buf bytes.Buffer
	if len(args) == 0 || json.Compact(&buf, args) != nil {
		return name + "()"
	}
	return name + "(" + buf.String() + ")"
}
