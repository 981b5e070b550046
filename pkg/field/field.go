package field

import (
	"bytes"
	"fmt"
	"time"
)

// Kind identifies which primitive a Value holds
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTime
	KindBytes
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the supported field kinds. The zero Value has
// KindInvalid and matches no kind. Values are immutable after construction;
// construct them with the kind constructors below.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	raw  []byte
	t    time.Time
}

// Int creates an integer value
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float creates a floating-point value
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// String creates a text value
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Bool creates a boolean value
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Time creates a timestamp value. Precision is nanoseconds; anything finer
// is lost on the wire.
func Time(v time.Time) Value {
	return Value{kind: KindTime, t: v}
}

// Bytes creates a binary value. The slice is not copied; callers must not
// mutate it after handing it over.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, raw: v}
}

// Kind returns the kind tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload, or false if the value holds another kind.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the floating-point payload, or false on a kind mismatch.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Text returns the string payload, or false on a kind mismatch.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindString
}

// Bool returns the boolean payload, or false on a kind mismatch.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Time returns the timestamp payload, or false on a kind mismatch.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Bytes returns the binary payload, or false on a kind mismatch. The returned
// slice is the stored one; callers must not mutate it.
func (v Value) Bytes() ([]byte, bool) {
	return v.raw, v.kind == KindBytes
}

// Equal reports whether two values hold the same kind and the same payload.
// Timestamps compare by instant, so two representations of the same moment
// in different locations are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	default:
		return true
	}
}

// String renders the value for diagnostics and the inspect command
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	case KindBytes:
		return fmt.Sprintf("0x%x", v.raw)
	default:
		return "<invalid>"
	}
}
