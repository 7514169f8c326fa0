// model/value.go
package model

import (
	"fmt"
	"time"
)

// Value is a closed tagged union over the supported field value types. Only
// the member selected by Type is meaningful; the rest stay zero.
type Value struct {
	Type ValueType
	Str  string
	Num  float64
	Bool bool
	Time time.Time
	List []Value
}

func StringValue(s string) Value    { return Value{Type: TypeString, Str: s} }
func NumberValue(n float64) Value   { return Value{Type: TypeNumber, Num: n} }
func BoolValue(b bool) Value        { return Value{Type: TypeBoolean, Bool: b} }
func TimeValue(t time.Time) Value   { return Value{Type: TypeTimestamp, Time: t} }
func EnumValue(s string) Value      { return Value{Type: TypeEnum, Str: s} }
func ListValue(vs []Value) Value    { return Value{Type: TypeList, List: vs} }

// ValueOf converts a decoded JSON literal into a Value using its natural
// type. Timestamps and enums cannot be told apart from plain strings here;
// use CoerceValue when the declared field type is known.
func ValueOf(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case float64:
		return NumberValue(v), nil
	case int:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case bool:
		return BoolValue(v), nil
	case time.Time:
		return TimeValue(v), nil
	case []interface{}:
		list := make([]Value, 0, len(v))
		for _, elem := range v {
			ev, err := ValueOf(elem)
			if err != nil {
				return Value{}, err
			}
			list = append(list, ev)
		}
		return ListValue(list), nil
	case nil:
		return Value{}, fmt.Errorf("null is not a supported value")
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// CoerceValue converts a decoded JSON literal into a Value of the declared
// field type. Timestamps are accepted as RFC3339 strings.
func CoerceValue(raw interface{}, declared ValueType) (Value, error) {
	switch declared {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string, got %T", raw)
		}
		return StringValue(s), nil
	case TypeEnum:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected enum value as string, got %T", raw)
		}
		return EnumValue(s), nil
	case TypeNumber:
		switch n := raw.(type) {
		case float64:
			return NumberValue(n), nil
		case int:
			return NumberValue(float64(n)), nil
		case int64:
			return NumberValue(float64(n)), nil
		default:
			return Value{}, fmt.Errorf("expected number, got %T", raw)
		}
	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("expected boolean, got %T", raw)
		}
		return BoolValue(b), nil
	case TypeTimestamp:
		switch t := raw.(type) {
		case time.Time:
			return TimeValue(t), nil
		case string:
			parsed, err := time.Parse(time.RFC3339, t)
			if err != nil {
				return Value{}, fmt.Errorf("expected RFC3339 timestamp: %w", err)
			}
			return TimeValue(parsed), nil
		default:
			return Value{}, fmt.Errorf("expected timestamp, got %T", raw)
		}
	case TypeList:
		elems, ok := raw.([]interface{})
		if !ok {
			return Value{}, fmt.Errorf("expected list, got %T", raw)
		}
		list := make([]Value, 0, len(elems))
		for _, elem := range elems {
			ev, err := ValueOf(elem)
			if err != nil {
				return Value{}, err
			}
			list = append(list, ev)
		}
		return ListValue(list), nil
	default:
		return Value{}, fmt.Errorf("unknown declared type %q", declared)
	}
}

// Equal compares two values. String and enum values compare by their text,
// so an enum field can be matched against a plain string literal.
func (v Value) Equal(other Value) bool {
	if !v.comparableWith(other) {
		return false
	}
	switch v.Type {
	case TypeString, TypeEnum:
		return v.Str == other.Str
	case TypeNumber:
		return v.Num == other.Num
	case TypeBoolean:
		return v.Bool == other.Bool
	case TypeTimestamp:
		return v.Time.Equal(other.Time)
	case TypeList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) comparableWith(other Value) bool {
	if v.Type == other.Type {
		return true
	}
	textual := func(t ValueType) bool { return t == TypeString || t == TypeEnum }
	return textual(v.Type) && textual(other.Type)
}
