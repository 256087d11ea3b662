package funcall

import (
	"encoding/json"
	"fmt"
)

// Datatype is the wire type of a tool parameter as advertised to the model.
type Datatype string

const (
	TypeString       Datatype = "string"
	TypeInteger      Datatype = "integer"
	TypeFloat        Datatype = "float"
	TypeBoolean      Datatype = "boolean"
	TypeStringArray  Datatype = "string[]"
	TypeIntegerArray Datatype = "integer[]"
	TypeFloatArray   Datatype = "float[]"
)

// Valid reports whether d is one of the supported datatypes.
func (d Datatype) Valid() bool {
	switch d {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean,
		TypeStringArray, TypeIntegerArray, TypeFloatArray:
		return true
	}
	return false
}

// elem returns the element type of an array datatype.
func (d Datatype) elem() (Datatype, bool) {
	switch d {
	case TypeStringArray:
		return TypeString, true
	case TypeIntegerArray:
		return TypeInteger, true
	case TypeFloatArray:
		return TypeFloat, true
	}
	return "", false
}

// check verifies that raw is a JSON value of datatype d. The JSON kind is
// inspected first: encoding/json would otherwise treat null as a no-op and
// accept numeric strings into json.Number. Integers must have no fractional
// part; arrays are checked element by element.
func (d Datatype) check(raw json.RawMessage) error {
	kind := jsonKind(raw)
	switch d {
	case TypeString:
		if kind != "string" {
			return fmt.Errorf("expected %s, got %s", d, kind)
		}
	case TypeBoolean:
		if kind != "boolean" {
			return fmt.Errorf("expected %s, got %s", d, kind)
		}
	case TypeInteger:
		if kind != "number" {
			return fmt.Errorf("expected %s, got %s", d, kind)
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected %s: %w", d, err)
		}
		if _, err := n.Int64(); err != nil {
			return fmt.Errorf("expected %s, got non-integral number %s", d, n)
		}
	case TypeFloat:
		if kind != "number" {
			return fmt.Errorf("expected %s, got %s", d, kind)
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected %s: %w", d, err)
		}
		if _, err := n.Float64(); err != nil {
			return fmt.Errorf("expected %s, got %s", d, n)
		}
	case TypeStringArray, TypeIntegerArray, TypeFloatArray:
		if kind != "array" {
			return fmt.Errorf("expected %s, got %s", d, kind)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("expected %s: %w", d, err)
		}
		el, _ := d.elem()
		for i, item := range items {
			if err := el.check(item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown datatype %q", d)
	}
	return nil
}

// jsonKind names the JSON kind of raw for error messages ("string", "number", ...).
func jsonKind(raw json.RawMessage) string {
	for _, c := range raw {
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c == '"':
			return "string"
		case c == '{':
			return "object"
		case c == '[':
			return "array"
		case c == 't' || c == 'f':
			return "boolean"
		case c == 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "empty value"
}

// Param describes one named, typed argument of a tool. The label must match a
// json-tagged field of the tool's argument struct; parameters are required
// unless Optional is set.
type Param struct {
	Label       string
	Description string
	Type        Datatype
	Optional    bool
}
