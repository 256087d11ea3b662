package funcall

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Text string `json:"text"`
}

func newEchoTool(t *testing.T, clearance Clearance) Tool {
	t.Helper()
	tool, err := New("echo", "Echo text back", clearance,
		[]Param{{Label: "text", Description: "text to echo", Type: TypeString}},
		func(_ context.Context, args echoArgs) (string, error) {
			return args.Text, nil
		},
	)
	require.NoError(t, err)
	return tool
}

func TestNew_ConstructionErrors(t *testing.T) {
	fn := func(_ context.Context, _ echoArgs) (string, error) { return "", nil }
	tests := []struct {
		name      string
		toolName  string
		clearance Clearance
		params    []Param
	}{
		{"empty name", "", ClearanceRegular, nil},
		{"invalid clearance", "t", Clearance("admin"), nil},
		{"empty clearance", "t", Clearance(""), nil},
		{"empty label", "t", ClearanceRegular, []Param{{Label: "", Type: TypeString}}},
		{"invalid datatype", "t", ClearanceRegular, []Param{{Label: "text", Type: Datatype("uuid")}}},
		{"duplicate label", "t", ClearanceRegular, []Param{
			{Label: "text", Type: TypeString},
			{Label: "text", Type: TypeString},
		}},
		{"label not in argument type", "t", ClearanceRegular, []Param{
			{Label: "nope", Type: TypeString},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.toolName, "d", tt.clearance, tt.params, fn)
			assert.Error(t, err)
		})
	}
}

func TestNew_NilHandler(t *testing.T) {
	_, err := New[echoArgs, string]("t", "d", ClearanceRegular, nil, nil)
	assert.Error(t, err)
}

func TestTool_Accessors(t *testing.T) {
	tool := newEchoTool(t, ClearanceSensitive)
	assert.Equal(t, "echo", tool.Name())
	assert.Equal(t, "Echo text back", tool.Description())
	assert.Equal(t, ClearanceSensitive, tool.Clearance())
	require.Len(t, tool.Params(), 1)
	assert.Equal(t, "text", tool.Params()[0].Label)
}

func TestInvoke_DecodeErrors(t *testing.T) {
	type manyArgs struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	tool, err := New("many", "d", ClearanceRegular,
		[]Param{
			{Label: "name", Type: TypeString},
			{Label: "count", Type: TypeInteger},
			{Label: "tags", Type: TypeStringArray, Optional: true},
		},
		func(_ context.Context, _ manyArgs) (string, error) { return "ok", nil },
	)
	require.NoError(t, err)

	tests := []struct {
		name  string
		args  string
		field string
	}{
		{"missing required", `{"name":"x"}`, "count"},
		{"wrong scalar type", `{"name":"x","count":"three"}`, "count"},
		{"fractional integer", `{"name":"x","count":2.5}`, "count"},
		{"bad array element", `{"name":"x","count":1,"tags":["a",2]}`, "tags"},
		{"not an object", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.Invoke(context.Background(), []byte(tt.args))
			require.Error(t, err)
			var ae *ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.field, ae.Field)
		})
	}
}

func TestInvoke_OptionalParamMayBeAbsent(t *testing.T) {
	type args struct {
		Name string `json:"name"`
		Note string `json:"note"`
	}
	tool, err := New("opt", "d", ClearanceRegular,
		[]Param{
			{Label: "name", Type: TypeString},
			{Label: "note", Type: TypeString, Optional: true},
		},
		func(_ context.Context, a args) (string, error) { return a.Name + a.Note, nil },
	)
	require.NoError(t, err)
	out, err := tool.Invoke(context.Background(), []byte(`{"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestInvoke_EmptyArgsForNoParams(t *testing.T) {
	tool, err := New("ping", "d", ClearanceRegular, nil,
		func(_ context.Context, _ struct{}) (string, error) { return "pong", nil },
	)
	require.NoError(t, err)
	for _, args := range [][]byte{nil, []byte(""), []byte("{}")} {
		out, err := tool.Invoke(context.Background(), args)
		require.NoError(t, err)
		assert.Equal(t, "pong", out)
	}
}

func TestInvoke_HandlerErrorPassesThroughUnchanged(t *testing.T) {
	errDisk := errors.New("disk on fire")
	tool, err := New("fail", "d", ClearanceRegular, nil,
		func(_ context.Context, _ struct{}) (string, error) { return "", errDisk },
	)
	require.NoError(t, err)
	_, err = tool.Invoke(context.Background(), []byte(`{}`))
	require.Error(t, err)
	assert.Same(t, errDisk, err)
	assert.False(t, IsArgumentError(err))
	assert.False(t, IsPermissionDenied(err))
}

type coords struct {
	Lat float64
	Lon float64
}

func (c coords) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		expect string
	}{
		{"string passthrough", "hello", "hello"},
		{"stringer override", coords{Lat: 55.7558, Lon: 37.6173}, "55.7558,37.6173"},
		{"integer", 5, "5"},
		{"struct json", struct {
			Sum int `json:"sum"`
		}{Sum: 5}, `{"sum":5}`},
		{"slice json", []int{1, 2, 3}, "[1,2,3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderResult(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
			// Deterministic for a given value.
			again, err := renderResult(tt.value)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestTool_Definition(t *testing.T) {
	tool := newEchoTool(t, ClearanceRegular)
	data, err := tool.Definition()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"echo"`)
	assert.Contains(t, string(data), `"text"`)
}
