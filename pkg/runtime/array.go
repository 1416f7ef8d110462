package runtime

import (
	"errors"
	"fmt"
	"math"

	"mlang/interpreter-go/pkg/ast"
)

// ElemKind is the element type of an ArrayValue.
type ElemKind int

const (
	ElemInt ElemKind = iota
	ElemFloat
)

func (e ElemKind) String() string {
	if e == ElemFloat {
		return "Float"
	}
	return "Int"
}

func promoteElem(a, b ElemKind) ElemKind {
	if a == ElemFloat || b == ElemFloat {
		return ElemFloat
	}
	return ElemInt
}

// ArrayValue is a dense vector (Rank 1) or row-major matrix (Rank 2). Int
// arrays hold integral values in Data. A vector has Rows == 1.
type ArrayValue struct {
	Rank int
	Rows int
	Cols int
	Elem ElemKind
	Data []float64
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// NewVector builds a vector over data (not copied).
func NewVector(elem ElemKind, data []float64) *ArrayValue {
	return &ArrayValue{Rank: 1, Rows: 1, Cols: len(data), Elem: elem, Data: data}
}

// NewMatrix builds a rows x cols matrix over data (not copied).
func NewMatrix(rows, cols int, elem ElemKind, data []float64) (*ArrayValue, error) {
	if err := CheckSize(rows, cols); err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix of %dx%d needs %d elements, got %d", rows, cols, rows*cols, len(data))
	}
	return &ArrayValue{Rank: 2, Rows: rows, Cols: cols, Elem: elem, Data: data}, nil
}

// MaxElements bounds the element count of arrays built from sizes, such as
// zeros(rows, cols).
const MaxElements = 1 << 24

// SizeError reports requested dimensions beyond MaxElements.
type SizeError struct {
	Rows int
	Cols int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("Matrix of %dx%d exceeds the limit of %d elements", e.Rows, e.Cols, MaxElements)
}

// CheckSize reports whether a rows x cols array fits in MaxElements without
// overflowing.
func CheckSize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("negative dimensions %dx%d", rows, cols)
	}
	if cols != 0 && rows > MaxElements/cols {
		return &SizeError{Rows: rows, Cols: cols}
	}
	return nil
}

// Filled returns a rows x cols Int matrix with every element set to value.
func Filled(rows, cols int, value int64) (*ArrayValue, error) {
	if err := CheckSize(rows, cols); err != nil {
		return nil, err
	}
	data := make([]float64, rows*cols)
	if value != 0 {
		for i := range data {
			data[i] = float64(value)
		}
	}
	return &ArrayValue{Rank: 2, Rows: rows, Cols: cols, Elem: ElemInt, Data: data}, nil
}

// Identity returns the n x n Int identity matrix.
func Identity(n int) (*ArrayValue, error) {
	m, err := Filled(n, n, 0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m, nil
}

// Shape returns [len] for vectors and [rows, cols] for matrices.
func (v *ArrayValue) Shape() []int {
	if v.Rank == 1 {
		return []int{v.Cols}
	}
	return []int{v.Rows, v.Cols}
}

// ShapeString renders the shape as "(3)" or "(2, 3)".
func (v *ArrayValue) ShapeString() string {
	if v.Rank == 1 {
		return fmt.Sprintf("(%d)", v.Cols)
	}
	return fmt.Sprintf("(%d, %d)", v.Rows, v.Cols)
}

func (v *ArrayValue) sameShape(other *ArrayValue) bool {
	return v.Rank == other.Rank && v.Rows == other.Rows && v.Cols == other.Cols
}

// offset validates a zero-based index list against the shape.
func (v *ArrayValue) offset(indices []int64) (int, error) {
	shape := v.Shape()
	if len(indices) != len(shape) {
		return 0, fmt.Errorf("wrong number of indices: got %d, expected %d", len(indices), len(shape))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= int64(shape[i]) {
			return 0, fmt.Errorf("index %d out of bounds (dimension size is %d)", idx, shape[i])
		}
	}
	if v.Rank == 1 {
		return int(indices[0]), nil
	}
	return int(indices[0])*v.Cols + int(indices[1]), nil
}

func (v *ArrayValue) element(i int) Value {
	if v.Elem == ElemFloat {
		return FloatValue{Val: v.Data[i]}
	}
	return IntegerValue{Val: int64(v.Data[i])}
}

// At returns the element at the given zero-based indices.
func (v *ArrayValue) At(indices ...int64) (Value, error) {
	off, err := v.offset(indices)
	if err != nil {
		return nil, err
	}
	return v.element(off), nil
}

// Set stores a scalar number at the given indices. Storing a float into an
// Int array turns the whole array into a Float array. Nothing changes when an
// error is returned.
func (v *ArrayValue) Set(value Value, indices ...int64) error {
	n, isFloat, ok := NumericValue(value)
	if !ok {
		return fmt.Errorf("cannot store %s in a %s", Describe(value), Describe(v))
	}
	off, err := v.offset(indices)
	if err != nil {
		return err
	}
	if isFloat {
		v.Elem = ElemFloat
	}
	v.Data[off] = n
	return nil
}

// Clone returns a deep copy.
func (v *ArrayValue) Clone() *ArrayValue {
	data := make([]float64, len(v.Data))
	copy(data, v.Data)
	return &ArrayValue{Rank: v.Rank, Rows: v.Rows, Cols: v.Cols, Elem: v.Elem, Data: data}
}

// Transpose swaps the dimensions of a matrix. A vector is returned unchanged
// (copied); vectors carry no orientation.
func (v *ArrayValue) Transpose() *ArrayValue {
	if v.Rank == 1 {
		return v.Clone()
	}
	data := make([]float64, len(v.Data))
	for r := 0; r < v.Rows; r++ {
		for c := 0; c < v.Cols; c++ {
			data[c*v.Rows+r] = v.Data[r*v.Cols+c]
		}
	}
	return &ArrayValue{Rank: 2, Rows: v.Cols, Cols: v.Rows, Elem: v.Elem, Data: data}
}

// Equal reports whether both arrays have the same shape and element values.
// Element kinds are ignored.
func (v *ArrayValue) Equal(other *ArrayValue) bool {
	if other == nil || !v.sameShape(other) {
		return false
	}
	for i := range v.Data {
		if v.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

//-----------------------------------------------------------------------------
// Kernels
//-----------------------------------------------------------------------------

// MatMul is the matrix product of an m x k and a k x n matrix.
func MatMul(a, b *ArrayValue) (*ArrayValue, error) {
	if a.Rank != 2 || b.Rank != 2 {
		return nil, fmt.Errorf("matrix multiplication requires two matrices")
	}
	if a.Cols != b.Rows {
		return nil, &ShapeError{Left: a.ShapeString(), Right: b.ShapeString(), Operation: "matrix multiplication"}
	}
	data := make([]float64, a.Rows*b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.Data[i*a.Cols+k]
			for j := 0; j < b.Cols; j++ {
				data[i*b.Cols+j] += aik * b.Data[k*b.Cols+j]
			}
		}
	}
	return &ArrayValue{Rank: 2, Rows: a.Rows, Cols: b.Cols, Elem: promoteElem(a.Elem, b.Elem), Data: data}, nil
}

// Dot is the inner product of two equal-length vectors. The result is always
// a float.
func Dot(a, b *ArrayValue) (FloatValue, error) {
	if a.Rank != 1 || b.Rank != 1 {
		return FloatValue{}, fmt.Errorf("dot product requires two vectors")
	}
	if a.Cols != b.Cols {
		return FloatValue{}, &ShapeError{Left: a.ShapeString(), Right: b.ShapeString(), Operation: "dot product"}
	}
	var sum float64
	for i := range a.Data {
		sum += a.Data[i] * b.Data[i]
	}
	return FloatValue{Val: sum}, nil
}

// Scale multiplies every element by s.
func Scale(a *ArrayValue, s float64, sIsFloat bool) *ArrayValue {
	out, _ := ScalarElementWise(a, s, sIsFloat, ast.BinaryOperatorMul, false)
	return out
}

// Negate flips the sign of every element.
func Negate(a *ArrayValue) *ArrayValue {
	out := a.Clone()
	for i := range out.Data {
		out.Data[i] = -out.Data[i]
	}
	return out
}

// ElementWise combines two arrays of identical shape element by element. op
// may be either the dotted or the plain arithmetic operator. Division always
// produces a Float array.
func ElementWise(a, b *ArrayValue, op ast.BinaryOperator) (*ArrayValue, error) {
	if !a.sameShape(b) {
		return nil, &ShapeError{Left: a.ShapeString(), Right: b.ShapeString(), Operation: "operation '" + string(op) + "'"}
	}
	base := op.Linear()
	data := make([]float64, len(a.Data))
	for i := range data {
		v, err := applyArith(base, a.Data[i], b.Data[i])
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return &ArrayValue{Rank: a.Rank, Rows: a.Rows, Cols: a.Cols, Elem: resultElem(base, a.Elem, b.Elem), Data: data}, nil
}

// ScalarElementWise applies op between every element of a and the scalar s.
// scalarLeft puts the scalar on the left-hand side.
func ScalarElementWise(a *ArrayValue, s float64, sIsFloat bool, op ast.BinaryOperator, scalarLeft bool) (*ArrayValue, error) {
	base := op.Linear()
	sElem := ElemInt
	if sIsFloat {
		sElem = ElemFloat
	}
	data := make([]float64, len(a.Data))
	for i, x := range a.Data {
		l, r := x, s
		if scalarLeft {
			l, r = s, x
		}
		v, err := applyArith(base, l, r)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return &ArrayValue{Rank: a.Rank, Rows: a.Rows, Cols: a.Cols, Elem: resultElem(base, a.Elem, sElem), Data: data}, nil
}

func resultElem(op ast.BinaryOperator, a, b ElemKind) ElemKind {
	if op == ast.BinaryOperatorDiv {
		return ElemFloat
	}
	return promoteElem(a, b)
}

// ErrDivisionByZero is returned by every division with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// ShapeError reports operands whose dimensions do not fit the operation.
type ShapeError struct {
	Left, Right string
	Operation   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("Incompatible dimensions %s and %s for %s", e.Left, e.Right, e.Operation)
}

func applyArith(op ast.BinaryOperator, l, r float64) (float64, error) {
	switch op {
	case ast.BinaryOperatorAdd:
		return l + r, nil
	case ast.BinaryOperatorSub:
		return l - r, nil
	case ast.BinaryOperatorMul:
		return l * r, nil
	case ast.BinaryOperatorDiv:
		if r == 0 {
			return math.NaN(), ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unsupported operator '%s'", op)
}
