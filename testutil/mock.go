// Package testutil provides test helpers for funcall (MockTool, MockAuthorizer).
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/skosovsky/funcall"
)

// MockTool is a configurable Tool implementation for tests.
type MockTool struct {
	NameVal       string
	DescVal       string
	ClearanceVal  funcall.Clearance
	ParamsVal     []funcall.Param
	DefinitionVal []byte
	InvokeFn      func(ctx context.Context, args []byte) (string, error)
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Description returns the tool description.
func (m *MockTool) Description() string {
	return m.DescVal
}

// Clearance returns the configured clearance, defaulting to regular.
func (m *MockTool) Clearance() funcall.Clearance {
	if m.ClearanceVal != "" {
		return m.ClearanceVal
	}
	return funcall.ClearanceRegular
}

// Params returns the configured parameter list (possibly nil).
func (m *MockTool) Params() []funcall.Param {
	return m.ParamsVal
}

// Definition returns DefinitionVal if set, otherwise an empty JSON object.
func (m *MockTool) Definition() ([]byte, error) {
	if m.DefinitionVal != nil {
		return m.DefinitionVal, nil
	}
	return []byte("{}"), nil
}

// Invoke runs InvokeFn if set, otherwise returns "".
func (m *MockTool) Invoke(ctx context.Context, args []byte) (string, error) {
	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, args)
	}
	return "", nil
}

// Ensure MockTool implements Tool.
var _ funcall.Tool = (*MockTool)(nil)

// MockAuthorizer is a configurable Authorizer for tests: canned answers,
// optional delay (honoring ctx), error injection, and recorded messages.
type MockAuthorizer struct {
	ConfirmResult bool
	AuthResult    bool
	Delay         time.Duration
	Err           error

	mu           sync.Mutex
	confirmCalls []string
	authCalls    []string
}

// Confirm records message and returns the configured answer.
func (m *MockAuthorizer) Confirm(ctx context.Context, message string) (bool, error) {
	m.mu.Lock()
	m.confirmCalls = append(m.confirmCalls, message)
	m.mu.Unlock()
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	if m.Err != nil {
		return false, m.Err
	}
	return m.ConfirmResult, nil
}

// StrongAuthenticate records message and returns the configured answer.
func (m *MockAuthorizer) StrongAuthenticate(ctx context.Context, message string) (bool, error) {
	m.mu.Lock()
	m.authCalls = append(m.authCalls, message)
	m.mu.Unlock()
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	if m.Err != nil {
		return false, m.Err
	}
	return m.AuthResult, nil
}

// ConfirmCalls returns the messages passed to Confirm so far.
func (m *MockAuthorizer) ConfirmCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.confirmCalls...)
}

// AuthCalls returns the messages passed to StrongAuthenticate so far.
func (m *MockAuthorizer) AuthCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.authCalls...)
}

func (m *MockAuthorizer) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure MockAuthorizer implements Authorizer.
var _ funcall.Authorizer = (*MockAuthorizer)(nil)
