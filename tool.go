package symbolic

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Tool interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs a tool against the Default registry.
func HandleToolCall(req ToolRequest) ToolResponse { return Default.HandleToolCall(req) }

// HandleToolCall runs one tool call. Expressions in params use the ToJSON
// form and names are interned in r. Failures are reported in Error.
func (r *Registry) HandleToolCall(req ToolRequest) ToolResponse {
	getSymbol := func(key string) (Symbol, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return r.FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getMatrix := func(key string) (*Matrix, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be matrix object", key)
		}
		return r.MatrixFromJSON(raw)
	}
	var opts []RenderOption
	if compact, ok := req.Params["compact"].(bool); ok {
		opts = append(opts, WithCompact(compact))
	}
	respond := func(s Symbol, err error) ToolResponse {
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: s.toJSON(), String: Format(s, opts...)}
	}
	respondMatrix := func(m *Matrix, err error) ToolResponse {
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: m.toJSON(), String: m.Format(opts...)}
	}
	binary := func(a, b string, op func(Symbol, Symbol) (Symbol, error)) ToolResponse {
		left, err := getSymbol(a)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		right, err := getSymbol(b)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(op(left, right))
	}

	switch req.Tool {
	case "render":
		s, err := getSymbol("expr")
		return respond(s, err)

	case "add":
		return binary("a", "b", Add)
	case "subtract":
		return binary("a", "b", Subtract)
	case "multiply":
		return binary("a", "b", Multiply)
	case "divide":
		return binary("a", "b", Divide)
	case "pow":
		return binary("base", "exp", Pow)

	case "equal":
		a, err := getSymbol("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getSymbol("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		eq := a.Equal(b)
		return ToolResponse{Result: eq, String: fmt.Sprint(eq)}

	case "evaluate":
		s, err := getSymbol("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, ok := s.Eval()
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("expression has unbound arguments: %s", s)}
		}
		return ToolResponse{Result: v, String: fmt.Sprint(v)}

	case "set_value":
		name, err := getString("name")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, ok := req.Params["value"].(float64)
		if !ok {
			return ToolResponse{Error: "param value must be a number"}
		}
		r.SetValue(name, v)
		return ToolResponse{Result: v, String: fmt.Sprintf("%s = %v", name, v)}

	case "clear_value":
		name, err := getString("name")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		r.ClearValue(name)
		return ToolResponse{Result: name, String: name + " cleared"}

	case "angle_sums":
		first, err := getString("first")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		second, err := getString("second")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ids, err := NewSumAndDifference(r.Get(first), r.Get(second))
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		list := make([]interface{}, 0, 4)
		for _, id := range ids.Identities() {
			list = append(list, map[string]interface{}{
				"name":       id.Name.toJSON(),
				"expression": id.Expression.toJSON(),
			})
		}
		return ToolResponse{Result: list, String: ids.String()}

	case "matrix_mul":
		a, err := getMatrix("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getMatrix("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondMatrix(a.MatMul(b))

	case "replace_angle_sums":
		m, err := getMatrix("matrix")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondMatrix(ReplaceAngleSums(m))

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	expr := map[string]string{"expr": "object", "compact": "boolean"}
	pair := map[string]string{"a": "object", "b": "object", "compact": "boolean"}
	tools := []map[string]interface{}{
		ts("render", "Canonicalize and render an expression", []string{"expr"}, expr),
		ts("add", "a + b", []string{"a", "b"}, pair),
		ts("subtract", "a - b", []string{"a", "b"}, pair),
		ts("multiply", "a * b", []string{"a", "b"}, pair),
		ts("divide", "a / b", []string{"a", "b"}, pair),
		ts("pow", "base^exp, exp a rational value", []string{"base", "exp"}, map[string]string{"base": "object", "exp": "object", "compact": "boolean"}),
		ts("equal", "Structural equality of canonical forms", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
		ts("evaluate", "Numeric value when every argument is bound", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("set_value", "Bind an argument to a number", []string{"name", "value"}, map[string]string{"name": "string", "value": "number"}),
		ts("clear_value", "Unbind an argument", []string{"name"}, map[string]string{"name": "string"}),
		ts("angle_sums", "Angle sum and difference identities for two arguments", []string{"first", "second"}, map[string]string{"first": "string", "second": "string"}),
		ts("matrix_mul", "Matrix multiply a*b. matrix={rows,cols,entries:[expr,...]}", []string{"a", "b"}, pair),
		ts("replace_angle_sums", "Replace angle sum expansions in every cell", []string{"matrix"}, map[string]string{"matrix": "object", "compact": "boolean"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
