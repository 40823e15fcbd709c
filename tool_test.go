package symbolic_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symbolic"
)

func params(t *testing.T, text string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	return m
}

const (
	jsonX   = `{"type":"named","kind":"var","arg":"x"}`
	jsonTwo = `{"type":"value","value":"2"}`
)

// ============================================================
// Tool call tests
// ============================================================

func TestTool_Arithmetic(t *testing.T) {
	r := symbolic.NewRegistry()
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "add", Params: params(t, `{"a":`+jsonX+`,"b":`+jsonTwo+`}`)})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x + 2", resp.String)

	resp = r.HandleToolCall(symbolic.ToolRequest{Tool: "pow", Params: params(t, `{"base":`+jsonX+`,"exp":`+jsonTwo+`}`)})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^2", resp.String)

	resp = r.HandleToolCall(symbolic.ToolRequest{Tool: "divide", Params: params(t, `{"a":`+jsonX+`,"b":{"type":"value","value":"0"}}`)})
	assert.Contains(t, resp.Error, "divide by zero")

	resp = r.HandleToolCall(symbolic.ToolRequest{Tool: "multiply", Params: params(t, `{"a":`+jsonX+`}`)})
	assert.Equal(t, "missing param: b", resp.Error)
}

func TestTool_RenderCompact(t *testing.T) {
	r := symbolic.NewRegistry()
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "render", Params: params(t,
		`{"compact":true,"expr":{"type":"expr","op":"add","left":{"type":"named","kind":"cos","arg":"a"},"right":`+jsonX+`}}`)})
	require.Empty(t, resp.Error)
	assert.Equal(t, "c(a)+x", resp.String)
}

func TestTool_Binding(t *testing.T) {
	r := symbolic.NewRegistry()
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "set_value", Params: params(t, `{"name":"x","value":3}`)})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x = 3", resp.String)

	eval := symbolic.ToolRequest{Tool: "evaluate", Params: params(t, `{"expr":{"type":"expr","op":"multiply","left":`+jsonX+`,"right":`+jsonX+`}}`)}
	resp = r.HandleToolCall(eval)
	require.Empty(t, resp.Error)
	assert.Equal(t, 9.0, resp.Result)

	r.HandleToolCall(symbolic.ToolRequest{Tool: "clear_value", Params: params(t, `{"name":"x"}`)})
	resp = r.HandleToolCall(eval)
	assert.Contains(t, resp.Error, "unbound")
}

func TestTool_Equal(t *testing.T) {
	r := symbolic.NewRegistry()
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "equal", Params: params(t,
		`{"a":{"type":"expr","op":"add","left":`+jsonX+`,"right":`+jsonX+`},"b":{"type":"named","kind":"var","arg":"x","scalar":`+jsonTwo+`}}`)})
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)
}

func TestTool_AngleSums(t *testing.T) {
	r := symbolic.NewRegistry()
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "angle_sums", Params: params(t, `{"first":"alpha","second":"beta"}`)})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.String, "cos(alpha+beta) = cos(alpha) * cos(beta) - sin(alpha) * sin(beta)")
	list, ok := resp.Result.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 4)
}

func TestTool_Matrices(t *testing.T) {
	r := symbolic.NewRegistry()
	rot := func(arg string) string {
		c := `{"type":"named","kind":"cos","arg":"` + arg + `"}`
		s := `{"type":"named","kind":"sin","arg":"` + arg + `"}`
		ns := `{"type":"named","kind":"sin","arg":"` + arg + `","scalar":{"type":"value","value":"-1"}}`
		return `{"rows":2,"cols":2,"entries":[` + c + `,` + ns + `,` + s + `,` + c + `]}`
	}
	resp := r.HandleToolCall(symbolic.ToolRequest{Tool: "matrix_mul", Params: params(t, `{"a":`+rot("a")+`,"b":`+rot("b")+`}`)})
	require.Empty(t, resp.Error)
	assert.True(t, strings.HasPrefix(resp.String, "["))

	product, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	b, err := json.Marshal(map[string]interface{}{"matrix": product})
	require.NoError(t, err)
	resp = r.HandleToolCall(symbolic.ToolRequest{Tool: "replace_angle_sums", Params: params(t, string(b))})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.String, "cos(a+b)")
	assert.Contains(t, resp.String, "-sin(b+a)")

	resp = r.HandleToolCall(symbolic.ToolRequest{Tool: "matrix_mul", Params: params(t, `{"a":`+rot("a")+`,"b":{"rows":1,"cols":1,"entries":[`+jsonTwo+`]}}`)})
	assert.Contains(t, resp.Error, "dimension mismatch")
}

func TestTool_Spec(t *testing.T) {
	resp := symbolic.HandleToolCall(symbolic.ToolRequest{Tool: "tool_spec"})
	spec, ok := resp.Result.(string)
	require.True(t, ok)
	var obj struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(spec), &obj))
	assert.Len(t, obj.Tools, 14)

	resp = symbolic.HandleToolCall(symbolic.ToolRequest{Tool: "integrate"})
	assert.Equal(t, "unknown tool: integrate", resp.Error)
}
