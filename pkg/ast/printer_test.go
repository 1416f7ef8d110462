package ast

import (
	"bytes"
	"testing"
)

func TestFormatProgramKeepsElseWithOuterIf(t *testing.T) {
	program := Prog(
		If(ID("a"), If(ID("b"), Print(Int(1)), nil), Print(Int(2))),
	)
	want := "if (a) {\n    if (b)\n        print 1;\n} else\n    print 2;\n"
	if got := FormatProgram(program); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatExpressions(t *testing.T) {
	cases := []struct {
		expr Expression
		want string
	}{
		{Bin("*", Bin("+", ID("a"), Int(1)), ID("b")), "(a + 1) * b"},
		{Neg(T(ID("m"))), "-m'"},
		{T(Neg(ID("m"))), "(-m)'"},
		{Mat([]int64{1, 2}, []int64{3, 4}), "[[1, 2], [3, 4]]"},
		{Call("zeros", Int(2), Int(3)), "zeros(2, 3)"},
		{Index("m", Int(0), ID("j")), "m[0, j]"},
		{Rel("!=", Str("x"), Str("y")), `"x" != "y"`},
		{Flt(2), "2.0"},
	}
	for _, tc := range cases {
		if got := Format(tc.expr); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		1:      "1.0",
		0.5:    "0.5",
		-3:     "-3.0",
		1e21:   "1e+21",
		0.0001: "0.0001",
	}
	for in, want := range cases {
		if got := FormatFloat(in); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSkipsErrorNodes(t *testing.T) {
	program := Prog(Assign(ID("a"), Int(1)), NewErrorNode(2), Print(ID("a")))
	if got := FormatProgram(program); got != "a = 1;\nprint a;\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatErrorNodeBodiesAsEmptyBlocks(t *testing.T) {
	program := Prog(
		While(ID("x"), NewErrorNode(1)),
		Print(Int(1)),
		If(ID("a"), NewErrorNode(3), Print(Int(2))),
		For("i", Int(0), Int(3), NewErrorNode(5)),
		While(ID("x"), If(ID("y"), NewErrorNode(6), nil)),
	)
	want := "while (x) {\n}\n" +
		"print 1;\n" +
		"if (a) {\n} else\n    print 2;\n" +
		"for i = 0:3 {\n}\n" +
		"while (x)\n    if (y) {\n    }\n"
	if got := FormatProgram(program); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDumpTree(t *testing.T) {
	program := Prog(
		For("i", Int(1), ID("n"), Blk(
			AssignOp("+=", Index("v", ID("i")), Int(1)),
			Brk(),
		)),
		Print(T(ID("v"))),
	)
	var buf bytes.Buffer
	if err := DumpTree(&buf, program); err != nil {
		t.Fatalf("DumpTree: %v", err)
	}
	want := `FOR
|  i
|  RANGE
|  |  1
|  |  n
|  +=
|  |  REF
|  |  |  v
|  |  |  i
|  |  1
|  BREAK
PRINT
|  TRANSPOSE
|  |  v
`
	if got := buf.String(); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestOperatorHelpers(t *testing.T) {
	if !BinaryOperatorDotMul.IsElementWise() || BinaryOperatorMul.IsElementWise() {
		t.Fatalf("IsElementWise mismatch")
	}
	if BinaryOperatorDotDiv.Linear() != BinaryOperatorDiv || BinaryOperatorAdd.Linear() != BinaryOperatorAdd {
		t.Fatalf("Linear mismatch")
	}
	if op, ok := AssignmentMul.BinaryOperator(); !ok || op != BinaryOperatorMul {
		t.Fatalf("compound assignment should map to '*'")
	}
	if _, ok := AssignmentAssign.BinaryOperator(); ok {
		t.Fatalf("plain assignment has no binary operator")
	}
}
