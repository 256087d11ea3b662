package funcall

import "encoding/json"

// wireKeys are the accepted top-level envelope keys, tried in order during
// decode. The first is the canonical key used on encode, so the tolerance is
// asymmetric: liberal on input, canonical on output.
var wireKeys = []string{"function_call", "function"}

// Envelope is one wire-level tool call request: a tool name plus its raw
// argument payload. It is transient; construct per incoming request, discard
// after dispatch.
type Envelope struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ParseEnvelope decodes a tool call from raw. Each wire key is attempted in
// order; a key that is absent or does not decode to a named call is skipped.
// If no key yields a call, the error is an *EnvelopeError listing the
// attempted keys.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return Envelope{}, &EnvelopeError{Keys: wireKeys}
	}
	for _, key := range wireKeys {
		inner, ok := outer[key]
		if !ok {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(inner, &env); err != nil || env.Name == "" {
			continue
		}
		return env, nil
	}
	return Envelope{}, &EnvelopeError{Keys: wireKeys}
}

// MarshalJSON always emits the canonical "function_call" form, regardless of
// which key the envelope was decoded from.
func (e Envelope) MarshalJSON() ([]byte, error) {
	type call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	return json.Marshal(map[string]call{
		wireKeys[0]: {Name: e.Name, Arguments: e.Arguments},
	})
}
