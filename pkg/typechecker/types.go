package typechecker

import "fmt"

// Type represents a structural type understood by the checker.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveInt    PrimitiveKind = "Int"
	PrimitiveFloat  PrimitiveKind = "Float"
	PrimitiveString PrimitiveKind = "String"
	PrimitiveRange  PrimitiveKind = "Range"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

var (
	intType    = PrimitiveType{Kind: PrimitiveInt}
	floatType  = PrimitiveType{Kind: PrimitiveFloat}
	stringType = PrimitiveType{Kind: PrimitiveString}
	rangeType  = PrimitiveType{Kind: PrimitiveRange}
)

// VectorType is a one-dimensional shaped type. Elem is Int, Float or Unknown
// (the empty literal).
type VectorType struct {
	Length int
	Elem   Type
}

func (v VectorType) Name() string {
	return fmt.Sprintf("Vector(%d, %s)", v.Length, typeName(v.Elem))
}

type MatrixType struct {
	Rows int
	Cols int
	Elem Type
}

func (m MatrixType) Name() string {
	return fmt.Sprintf("Matrix(%d, %d, %s)", m.Rows, m.Cols, typeName(m.Elem))
}

// UnknownType is produced after an error and absorbs further checks so a single
// mistake is reported once.
type UnknownType struct{}

func (UnknownType) Name() string { return "Unknown" }

func typeName(t Type) string {
	if t == nil {
		return "Unknown"
	}
	return t.Name()
}

func isUnknownType(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(UnknownType)
	return ok
}

func isPrimitive(t Type, kind PrimitiveKind) bool {
	p, ok := t.(PrimitiveType)
	return ok && p.Kind == kind
}

func isIntType(t Type) bool { return isPrimitive(t, PrimitiveInt) }

func isNumericType(t Type) bool {
	return isPrimitive(t, PrimitiveInt) || isPrimitive(t, PrimitiveFloat)
}

func isShapedType(t Type) bool {
	switch t.(type) {
	case VectorType, MatrixType:
		return true
	}
	return false
}

// dims returns the dimensions of a shaped type, nil otherwise.
func dims(t Type) []int {
	switch s := t.(type) {
	case VectorType:
		return []int{s.Length}
	case MatrixType:
		return []int{s.Rows, s.Cols}
	}
	return nil
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatDims(d []int) string {
	switch len(d) {
	case 1:
		return fmt.Sprintf("(%d)", d[0])
	case 2:
		return fmt.Sprintf("(%d, %d)", d[0], d[1])
	}
	return "()"
}

// elemType is the element type of a shaped type, or t itself for scalars.
func elemType(t Type) Type {
	switch s := t.(type) {
	case VectorType:
		return s.Elem
	case MatrixType:
		return s.Elem
	}
	return t
}

// promote applies numeric promotion: Float if either side is Float, else Int.
func promote(a, b Type) Type {
	if isPrimitive(a, PrimitiveFloat) || isPrimitive(b, PrimitiveFloat) {
		return floatType
	}
	return intType
}

// withElem rebuilds a shaped type with a different element type.
func withElem(t Type, elem Type) Type {
	switch s := t.(type) {
	case VectorType:
		return VectorType{Length: s.Length, Elem: elem}
	case MatrixType:
		return MatrixType{Rows: s.Rows, Cols: s.Cols, Elem: elem}
	}
	return elem
}

// TypesEqual compares two types structurally.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name() == b.Name()
}
