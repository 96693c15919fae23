// Package value implements C1: the tagged-union Value type and the
// closed Operation enumeration that the rest of the engine evaluates
// against. Value is a closed discriminated union (not a dynamically
// typed `any`) so the evaluator in package evaluator gets compile-time
// exhaustiveness over its variants, per the engine's design notes.
package value

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kind discriminates the Value variants named in the data model: Null,
// Bool, Int (signed 64-bit), Float (IEEE-754 64-bit), String, Array of
// Value, and Object (string-keyed, unique keys, order-insignificant).
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged union. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Int(i int64) Value           { return Value{kind: KindInt, i: i} }
func Float(f float64) Value       { return Value{kind: KindFloat, f: f} }
func String(s string) Value       { return Value{kind: KindString, s: s} }
func Array(items []Value) Value   { return Value{kind: KindArray, arr: items} }
func Object(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindObject, obj: m}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; zero value for non-Bool kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsInt truncates a Float toward zero, per §4.1. Non-numeric kinds
// return 0, false.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(math.Trunc(v.f)), true
	default:
		return 0, false
	}
}

// AsFloat is lossless for Int within +-2^53 and best-effort beyond,
// per §4.1.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// IsVariableRef reports whether this Value is a String literal beginning
// with "$" — the convention an ActionValue::Literal uses for a variable
// reference, per §3 "ActionValue".
func (v Value) IsVariableRef() (string, bool) {
	if v.kind != KindString || !strings.HasPrefix(v.s, "$") {
		return "", false
	}
	return strings.TrimPrefix(v.s, "$"), true
}

// Truthy implements §3's truthiness rule: Null/false/0/0.0/NaN/""/[]/{}
// are falsy, everything else truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0 && !math.IsNaN(v.f)
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return len(v.obj) > 0
	default:
		return false
	}
}

// Equal implements structural equality with the cross-numeric exception
// (Int(n) == Float(n.0)) and NaN(NaN) == true, per §3's invariants.
func (a Value) Equal(b Value) bool {
	switch a.kind {
	case KindNull:
		return b.kind == KindNull
	case KindBool:
		return b.kind == KindBool && a.b == b.b
	case KindInt:
		switch b.kind {
		case KindInt:
			return a.i == b.i
		case KindFloat:
			return float64(a.i) == b.f
		default:
			return false
		}
	case KindFloat:
		switch b.kind {
		case KindFloat:
			if math.IsNaN(a.f) && math.IsNaN(b.f) {
				return true
			}
			return a.f == b.f
		case KindInt:
			return a.f == float64(b.i)
		default:
			return false
		}
	case KindString:
		return b.kind == KindString && a.s == b.s
	case KindArray:
		if b.kind != KindArray || len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !a.arr[i].Equal(b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if b.kind != KindObject || len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders a value the way the trace builder wants to show it in
// messages: Python-ish literals (True/False/None) for readability.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("'%s'", v.s)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.obj[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

// Export converts a Value into a plain Go value suitable for JSON
// marshaling (the CLI/result surface, §6).
func (v Value) Export() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Export()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Export()
		}
		return out
	default:
		return nil
	}
}

// FromAny lifts a decoded JSON/YAML value (as produced by yaml.v3 or
// encoding/json into `any`) into a Value. Unsupported Go kinds (channels,
// funcs) become Null rather than panicking — the loader's bound checks
// reject oversized input before this is reached.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case float32:
		return Float(float64(t))
	case string:
		return String(t)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return Array(items)
	case []Value:
		return Array(t)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return Object(m)
	case map[any]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[fmt.Sprintf("%v", k)] = FromAny(e)
		}
		return Object(m)
	case Value:
		return t
	default:
		return Null()
	}
}
