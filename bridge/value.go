package bridge

import "strconv"

// Kind identifies the representation inside a boxed script value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "absent"
	}
}

// Value is a boxed dynamically-typed script value crossing the bridge.
// The zero Value is Absent: a distinguished "no value" result, distinct
// from a failure status.
type Value struct {
	str  string
	num  float64
	kind Kind
	b    bool
}

// Absent is the "no value" sentinel.
var Absent = Value{}

// Number boxes a float64.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// Bool boxes a bool.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String boxes a string.
func String(v string) Value { return Value{kind: KindString, str: v} }

// FromAny boxes a plain Go value. Unsupported types box as Absent, which
// SetProperty rejects without a native call.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Absent
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	default:
		return Absent
	}
}

// Kind returns the value's representation.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the Absent sentinel.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Number returns the boxed float64; zero unless Kind is KindNumber.
func (v Value) Number() float64 { return v.num }

// Bool returns the boxed bool; false unless Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Str returns the boxed string; empty unless Kind is KindString.
func (v Value) Str() string { return v.str }

// Any unboxes into a plain Go value: float64, bool, string, or nil for Absent.
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindString:
		return v.str
	default:
		return nil
	}
}

func (v Value) GoString() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return strconv.Quote(v.str)
	default:
		return "<absent>"
	}
}
