// Package funcall is a function-calling engine for LLM agents: it registers
// host-defined tools, advertises them to the model as order-preserving JSON
// schemas, decodes the model's call envelopes, gates execution behind a
// three-tier clearance policy, and tracks each invocation in an audit record.
//
// # Overview
//
// The model emits a structured request naming a function and a JSON argument
// payload. This package turns that request into a concrete Go call:
// ParseEnvelope → Registry.Dispatch → decode + shape-check arguments →
// Gate.Authorize → typed handler → rendered text result, with a CallRecord
// moving executing → succeeded|failed exactly once along the way.
//
// # Key concepts
//
//   - Type erasure: tools are generic over their argument/result types but
//     registered behind the non-generic Tool interface; Invoke hides both
//     type parameters.
//   - Declared schema: one []Param list drives both the schema shown to the
//     model (property order = declaration order) and the validation of
//     incoming arguments.
//   - Clearance: regular tools run silently, sensitive tools need an explicit
//     user confirmation, dangerous tools need strong-identity verification —
//     all through the external Authorizer collaborator.
//   - Wire tolerance: envelopes are accepted under "function_call" or
//     "function", and always echoed in the canonical "function_call" form.
//
// # Example
//
//	type Args struct {
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//	add, err := funcall.New("add_numbers", "Add two integers", funcall.ClearanceRegular,
//	    []funcall.Param{
//	        {Label: "a", Description: "first addend", Type: funcall.TypeInteger},
//	        {Label: "b", Description: "second addend", Type: funcall.TypeInteger},
//	    },
//	    func(_ context.Context, args Args) (int, error) { return args.A + args.B, nil },
//	)
//	if err != nil { ... }
//	reg := funcall.NewRegistry()
//	_ = reg.Register(add)
//	env, _ := funcall.ParseEnvelope([]byte(`{"function_call":{"name":"add_numbers","arguments":{"a":2,"b":3}}}`))
//	out, err := reg.Dispatch(ctx, env) // "5"
package funcall
