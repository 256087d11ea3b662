package funcall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Registry maps tool names to tools and dispatches incoming call envelopes.
// Registration is expected to finish before dispatching starts; the table is
// nonetheless guarded so concurrent lookup is always safe.
type Registry struct {
	mu          sync.RWMutex
	tools       map[string]Tool // wrapped with middlewares, used by Dispatch
	rawTools    map[string]Tool // unwrapped, used by Use() to re-apply middlewares from scratch
	order       []string        // registration order, drives Definitions()
	middlewares []Middleware
	gate        *Gate
	opts        registryOptions
}

// NewRegistry creates a Registry with the given options. Without WithGate,
// every tool above ClearanceRegular is denied.
func NewRegistry(opts ...RegistryOption) *Registry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		tools:    make(map[string]Tool),
		rawTools: make(map[string]Tool),
		gate:     o.gate,
		opts:     o,
	}
}

// Register adds a tool under its name. A duplicate name is rejected with
// ErrDuplicateTool unless the registry was built with WithOverwrite, in which
// case the new tool deterministically replaces the old one and keeps its
// original position in Definitions order. Stored middlewares (see Use) are
// applied before the tool becomes dispatchable.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return errors.New("tool name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rawTools[name]; exists {
		if !r.opts.overwrite {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
		}
	} else {
		r.order = append(r.order, name)
	}
	if b, ok := t.(gateBinder); ok {
		b.bindGate(r.gate)
	}
	r.rawTools[name] = t
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		t = r.middlewares[i](t)
	}
	r.tools[name] = t
	return nil
}

// Get returns the tool with the given name (after middlewares are applied),
// or (nil, false) if not found.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Definitions renders every registered tool's schema, in registration order,
// ready for system-prompt injection.
func (r *Registry) Definitions() ([]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]json.RawMessage, 0, len(r.order))
	for _, name := range r.order {
		def, err := r.tools[name].Definition()
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", name, err)
		}
		out = append(out, def)
	}
	return out, nil
}

// Dispatch routes one call envelope: look the tool up, open a CallRecord, and
// invoke the tool (decode, authorize, execute, render). The record is handed
// to the WithOnAccept hook while still executing and settles to its terminal
// state exactly once, when the invocation returns. Dispatches of different
// tools are independent and may run concurrently.
func (r *Registry) Dispatch(ctx context.Context, env Envelope) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[env.Name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, env.Name)
	}
	rec := NewCallRecord(env.Name)
	if r.opts.onAccept != nil {
		r.opts.onAccept(ctx, rec)
	}
	out, err := t.Invoke(ctx, env.Arguments)
	if err != nil {
		rec.Fail(err.Error())
		return "", err
	}
	rec.Succeed(out)
	return out, nil
}

// Use stores the given middlewares and reapplies them from scratch to all
// registered tools (onion order: first middleware is outermost). Tools
// registered after Use also get them. Calling Use again replaces the chain
// and rewraps from raw tools, avoiding double-wrapping.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for name, raw := range r.rawTools {
		t := raw
		for i := len(middlewares) - 1; i >= 0; i-- {
			t = middlewares[i](t)
		}
		r.tools[name] = t
	}
}
