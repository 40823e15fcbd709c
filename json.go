package symbolic

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes s as a tree of objects tagged "value", "named" or "expr".
func ToJSON(s Symbol) (string, error) {
	b, err := json.Marshal(s.toJSON())
	return string(b), err
}

// FromJSON decodes an object produced by ToJSON, interning names in the
// Default registry.
func FromJSON(data map[string]interface{}) (Symbol, error) { return Default.FromJSON(data) }

// ParseJSON decodes the text form of ToJSON.
func (r *Registry) ParseJSON(text string) (Symbol, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, err
	}
	return r.FromJSON(data)
}

// FromJSON decodes an object produced by ToJSON. Trees are rebuilt through
// the combinators, so hand-written input comes back in canonical form.
func (r *Registry) FromJSON(data map[string]interface{}) (Symbol, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}
	subRat := func(field string) (*big.Rat, bool, error) {
		if _, ok := data[field]; !ok {
			return nil, false, nil
		}
		s, err := subString(field)
		if err != nil {
			return nil, false, err
		}
		q, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, false, fmt.Errorf("%s: invalid %s %q", typ, field, s)
		}
		return q, true, nil
	}
	subSymbol := func(field string) (Symbol, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		s, err := r.FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return s, nil
	}
	// decorate applies the optional power, then the optional scalar.
	decorate := func(s Symbol) (Symbol, error) {
		pow, ok, err := subRat("power")
		if err != nil {
			return nil, err
		}
		if ok {
			if s, err = Pow(s, NewRat(pow)); err != nil {
				return nil, err
			}
		}
		if _, ok := data["scalar"]; !ok {
			return s, nil
		}
		k, err := subSymbol("scalar")
		if err != nil {
			return nil, err
		}
		kv, ok := k.(*Value)
		if !ok {
			return nil, fmt.Errorf("%s: scalar must be a value: %w", typ, ErrTypeMismatch)
		}
		return s.MultiplyScalar(kv)
	}

	switch typ {
	case "value":
		val, ok, err := subRat("value")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("value: missing 'value'")
		}
		pow, ok, err := subRat("power")
		if err != nil {
			return nil, err
		}
		if !ok {
			return ratValue(val), nil
		}
		return valueResult(powered(val, pow))

	case "named":
		kindName, err := subString("kind")
		if err != nil {
			return nil, err
		}
		kind, err := ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		arg, err := subString("arg")
		if err != nil {
			return nil, err
		}
		return decorate(r.Trig(kind, arg))

	case "expr":
		opName, err := subString("op")
		if err != nil {
			return nil, err
		}
		op, err := ParseOp(opName)
		if err != nil {
			return nil, err
		}
		left, err := subSymbol("left")
		if err != nil {
			return nil, err
		}
		right, err := subSymbol("right")
		if err != nil {
			return nil, err
		}
		inner, err := op.apply(left, right)
		if err != nil {
			return nil, err
		}
		return decorate(inner)
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

func (o Op) apply(left, right Symbol) (Symbol, error) {
	switch o {
	case OpAdd:
		return Add(left, right)
	case OpSubtract:
		return Subtract(left, right)
	case OpMultiply:
		return Multiply(left, right)
	}
	return Divide(left, right)
}

func (m *Matrix) toJSON() map[string]interface{} {
	entries := make([]interface{}, len(m.data))
	for i, s := range m.data {
		entries[i] = s.toJSON()
	}
	return map[string]interface{}{"rows": m.rows, "cols": m.cols, "entries": entries}
}

// MarshalJSON encodes the matrix as {"rows", "cols", "entries"} with
// row-major entries.
func (m *Matrix) MarshalJSON() ([]byte, error) { return json.Marshal(m.toJSON()) }

// MatrixFromJSON decodes the MarshalJSON form.
func (r *Registry) MatrixFromJSON(data map[string]interface{}) (*Matrix, error) {
	rowsF, ok := data["rows"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.rows must be a number")
	}
	colsF, ok := data["cols"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.cols must be a number")
	}
	raw, ok := data["entries"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("matrix.entries must be an array")
	}
	entries := make([]Symbol, len(raw))
	for i, er := range raw {
		obj, ok := er.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("matrix entry %d must be expression", i)
		}
		s, err := r.FromJSON(obj)
		if err != nil {
			return nil, fmt.Errorf("matrix entry %d: %w", i, err)
		}
		entries[i] = s
	}
	return MatrixFromSlice(int(rowsF), int(colsF), entries)
}
