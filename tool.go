package funcall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool is the uniform, non-generic contract every registered tool satisfies.
// Concrete tools are generic over their argument and result types; this
// interface erases both so a single dispatch path can route to any tool.
type Tool interface {
	Name() string
	Description() string
	Clearance() Clearance
	// Params returns the declared parameter list, in declaration order.
	Params() []Param
	// Definition renders the model-facing schema for this tool.
	Definition() ([]byte, error)
	// Invoke decodes args against the declared parameters, authorizes the
	// call, runs the handler, and renders its result to text.
	Invoke(ctx context.Context, args []byte) (string, error)
}

// gateBinder lets a registry attach its clearance gate to a tool at
// registration time without widening the Tool contract.
type gateBinder interface {
	bindGate(*Gate)
}

// tool is the generic adapter built by New. T and R are hidden behind Invoke.
type tool[T, R any] struct {
	name        string
	description string
	clearance   Clearance
	params      []Param
	gate        *Gate
	fn          func(context.Context, T) (R, error)
}

// New builds a Tool from a typed handler. params describes the arguments the
// model sees; T is the struct those arguments decode into. Construction fails
// on an empty name, an invalid clearance or datatype, a duplicate label, or a
// label with no matching json-tagged field in T, so the advertised schema
// cannot drift from the handler's argument struct.
func New[T, R any](
	name, description string,
	clearance Clearance,
	params []Param,
	fn func(ctx context.Context, args T) (R, error),
) (Tool, error) {
	if name == "" {
		return nil, errors.New("tool name must not be empty")
	}
	if fn == nil {
		return nil, fmt.Errorf("tool %q: handler must not be nil", name)
	}
	if !clearance.Valid() {
		return nil, fmt.Errorf("tool %q: invalid clearance %q", name, clearance)
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Label == "" {
			return nil, fmt.Errorf("tool %q: parameter label must not be empty", name)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("tool %q: parameter %q: unknown datatype %q", name, p.Label, p.Type)
		}
		if seen[p.Label] {
			return nil, fmt.Errorf("tool %q: duplicate parameter label %q", name, p.Label)
		}
		seen[p.Label] = true
	}
	if err := checkArgumentType[T](params); err != nil {
		return nil, fmt.Errorf("tool %q: %w", name, err)
	}
	return &tool[T, R]{
		name:        name,
		description: description,
		clearance:   clearance,
		params:      append([]Param(nil), params...),
		fn:          fn,
	}, nil
}

// checkArgumentType reflects a JSON Schema for T and verifies every declared
// label has a matching property, i.e. decodes into a field of T.
func checkArgumentType[T any](params []Param) error {
	if len(params) == 0 {
		return nil
	}
	schema, err := jsonschema.For[T](&jsonschema.ForOptions{})
	if err != nil {
		return fmt.Errorf("reflect argument type: %w", err)
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("reflect argument type: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("reflect argument type: %w", err)
	}
	props, _ := m["properties"].(map[string]any)
	for _, p := range params {
		if _, ok := props[p.Label]; !ok {
			return fmt.Errorf("parameter %q has no matching field in the argument type", p.Label)
		}
	}
	return nil
}

func (t *tool[T, R]) Name() string         { return t.name }
func (t *tool[T, R]) Description() string  { return t.description }
func (t *tool[T, R]) Clearance() Clearance { return t.clearance }

// Params returns a copy of the declared parameter list.
func (t *tool[T, R]) Params() []Param { return append([]Param(nil), t.params...) }

func (t *tool[T, R]) Definition() ([]byte, error) {
	return encodeDefinition(t.name, t.description, t.params)
}

func (t *tool[T, R]) bindGate(g *Gate) { t.gate = g }

// Invoke runs the full pipeline: decode and shape-check the arguments,
// authorize against the clearance gate, call the handler, render the result.
// Handler errors pass through unchanged; they are never masked as argument or
// permission failures.
func (t *tool[T, R]) Invoke(ctx context.Context, args []byte) (string, error) {
	decoded, err := decodeArgs[T](t.params, args)
	if err != nil {
		return "", err
	}
	if err := t.gate.Authorize(ctx, t.clearance, callSummary(t.name, args)); err != nil {
		return "", err
	}
	res, err := t.fn(ctx, decoded)
	if err != nil {
		return "", err
	}
	return renderResult(res)
}

// decodeArgs checks raw against the declared parameters and unmarshals it
// into T. Required presence is an exact label match; a present value must
// match its declared datatype. Failures cite the offending field.
func decodeArgs[T any](params []Param, raw []byte) (T, error) {
	var zero T
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, &ArgumentError{Reason: "arguments are not a JSON object: " + err.Error()}
	}
	for _, p := range params {
		val, ok := fields[p.Label]
		if !ok {
			if !p.Optional {
				return zero, &ArgumentError{Field: p.Label, Reason: "required argument is missing"}
			}
			continue
		}
		if err := p.Type.check(val); err != nil {
			return zero, &ArgumentError{Field: p.Label, Reason: err.Error()}
		}
	}
	var args T
	if err := json.Unmarshal(raw, &args); err != nil {
		return zero, &ArgumentError{Reason: err.Error()}
	}
	return args, nil
}

// renderResult produces the deterministic textual form of a handler result:
// strings pass through, fmt.Stringer is the per-tool override hook, and
// everything else becomes compact JSON.
func renderResult(v any) (string, error) {
	switch r := v.(type) {
	case string:
		return r, nil
	case fmt.Stringer:
		return r.String(), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("render result: %w", err)
	}
	return string(b), nil
}

var _ Tool = (*tool[struct{}, struct{}])(nil)
