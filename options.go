package funcall

import "context"

// registryOptions hold optional registry settings.
type registryOptions struct {
	overwrite bool
	gate      *Gate
	onAccept  func(context.Context, *CallRecord)
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

// WithOverwrite makes Register replace an existing tool of the same name
// instead of rejecting it with ErrDuplicateTool.
func WithOverwrite() RegistryOption {
	return func(o *registryOptions) {
		o.overwrite = true
	}
}

// WithGate sets the clearance gate applied to every registered tool. Without
// it, sensitive and dangerous tools are always denied.
func WithGate(g *Gate) RegistryOption {
	return func(o *registryOptions) {
		o.gate = g
	}
}

// WithOnAccept sets a hook that receives each call's CallRecord the moment
// the call is accepted, while the record is still in StatusExecuting. The
// host uses it to attach records to its transcript; the registry settles the
// record when the invocation finishes.
func WithOnAccept(fn func(context.Context, *CallRecord)) RegistryOption {
	return func(o *registryOptions) {
		o.onAccept = fn
	}
}
