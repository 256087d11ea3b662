package funcall

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope_BothWireKeys(t *testing.T) {
	canonical, err := ParseEnvelope([]byte(`{"function_call":{"name":"add","arguments":{"a":1}}}`))
	require.NoError(t, err)
	legacy, err := ParseEnvelope([]byte(`{"function":{"name":"add","arguments":{"a":1}}}`))
	require.NoError(t, err)
	assert.Equal(t, canonical.Name, legacy.Name)
	assert.JSONEq(t, string(canonical.Arguments), string(legacy.Arguments))
}

func TestParseEnvelope_PrefersFirstKey(t *testing.T) {
	raw := []byte(`{"function":{"name":"second","arguments":{}},"function_call":{"name":"first","arguments":{}}}`)
	env, err := ParseEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, "first", env.Name)
}

func TestParseEnvelope_FallsBackOnBadFirstKey(t *testing.T) {
	// function_call present but not a named call: the next key is attempted.
	raw := []byte(`{"function_call":"oops","function":{"name":"add","arguments":{"a":1}}}`)
	env, err := ParseEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, "add", env.Name)
}

func TestParseEnvelope_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no accepted key", `{"tool_call":{"name":"add","arguments":{}}}`},
		{"not an object", `[1,2,3]`},
		{"not json", `hello`},
		{"missing name", `{"function_call":{"arguments":{}}}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope([]byte(tt.raw))
			require.Error(t, err)
			var ee *EnvelopeError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, []string{"function_call", "function"}, ee.Keys)
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	env := Envelope{Name: "add", Arguments: json.RawMessage(`{"a":1,"b":2}`)}
	data, err := json.Marshal(env)
	require.NoError(t, err)
	back, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env.Name, back.Name)
	assert.JSONEq(t, string(env.Arguments), string(back.Arguments))
}

func TestEnvelope_CanonicalOutput(t *testing.T) {
	// Decoded from the legacy key, echoed under the canonical one.
	env, err := ParseEnvelope([]byte(`{"function":{"name":"add","arguments":{"a":1}}}`))
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	var outer map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &outer))
	assert.Contains(t, outer, "function_call")
	assert.NotContains(t, outer, "function")
}
