package kv

import (
	"encoding/json"
	"math"
	"reflect"
)

// Value is either a literal or a deferred producer. The zero Value resolves
// to nil.
type Value struct {
	literal any
	produce func() any
}

// Literal wraps a value that is used as is.
func Literal(v any) Value {
	return Value{literal: v}
}

// Deferred wraps a producer that is invoked only when the value is needed.
func Deferred(fn func() any) Value {
	return Value{produce: fn}
}

// IsDeferred reports whether v wraps a producer.
func (v Value) IsDeferred() bool {
	return v.produce != nil
}

// Resolve returns the literal, or invokes the producer and returns its
// result. Each call to Resolve invokes the producer again.
func (v Value) Resolve() any {
	if v.produce != nil {
		return v.produce()
	}
	return v.literal
}

// Truthy reports whether v would be truthy after a JSON round trip: nil,
// false, numeric zero, NaN, the empty string and nil pointers, maps and
// slices are falsy. Every other value, including empty objects and arrays,
// is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case json.RawMessage:
		return len(x) > 0 && Truthy(decodeLoose(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface())
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

func decodeLoose(raw json.RawMessage) any {
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return string(raw)
	}
	return out
}
