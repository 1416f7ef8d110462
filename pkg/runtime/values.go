package runtime

import (
	"fmt"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindRange
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindRange:
		return "range"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

// RangeValue is the inclusive integer range `start:end`.
type RangeValue struct {
	Start int64
	End   int64
}

func (v RangeValue) Kind() Kind { return KindRange }

// Len reports how many values the range yields; zero when End < Start.
func (v RangeValue) Len() int64 {
	if v.End < v.Start {
		return 0
	}
	return v.End - v.Start + 1
}

// NumericValue extracts a scalar number. ok is false for strings, ranges and
// arrays.
func NumericValue(v Value) (val float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.Val), false, true
	case FloatValue:
		return n.Val, true, true
	}
	return 0, false, false
}

// IsShaped reports whether v is a vector or matrix.
func IsShaped(v Value) bool {
	_, ok := v.(*ArrayValue)
	return ok
}

// Describe names the value category for error messages.
func Describe(v Value) string {
	switch a := v.(type) {
	case nil:
		return "nothing"
	case *ArrayValue:
		if a.Rank == 1 {
			return "vector"
		}
		return "matrix"
	}
	return v.Kind().String()
}
