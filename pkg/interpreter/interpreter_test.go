package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/runtime"
)

func newTestInterpreter(scope ScopeMode) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(Config{Stdout: &out, Scoping: scope}), &out
}

func mustEvaluate(t *testing.T, interp *Interpreter, source string) ProgramResult {
	t.Helper()
	result, err := interp.EvaluateSource([]byte(source), ProgramOptions{})
	if err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	if result.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: syntax=%v check=%v", result.Syntax, result.Diagnostics)
	}
	return result
}

func TestEvaluateProgramFromAST(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	program := ast.Prog(
		ast.Assign(ast.ID("m"), ast.Mat([]int64{1, 2}, []int64{3, 4})),
		ast.AssignOp("*=", ast.ID("m"), ast.Int(2)),
		ast.Print(ast.Index("m", ast.Int(1), ast.Int(0)), ast.T(ast.ID("m"))),
	)
	if _, err := interp.EvaluateProgram(program); err != nil {
		t.Fatalf("EvaluateProgram: %v", err)
	}
	if got := out.String(); got != "6 [[2, 6], [4, 8]]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTopLevelBreakIsRuntimeError(t *testing.T) {
	interp, _ := newTestInterpreter(ScopeFlat)
	_, err := interp.EvaluateProgram(ast.Prog(ast.Brk()))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if rerr.Message != "'break' used outside of loop" {
		t.Fatalf("unexpected message %q", rerr.Message)
	}
}

func TestReturnInsideLoopStopsProgram(t *testing.T) {
	interp, out := newTestInterpreter(ScopeBlock)
	result := mustEvaluate(t, interp, `
for i = 1:10 {
    if (i == 3) return i * 10;
    print i;
}
print "unreachable";
`)
	if got := out.String(); got != "1\n2\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if v, ok := result.Value.(runtime.IntegerValue); !ok || v.Val != 30 {
		t.Fatalf("expected return value 30, got %#v", result.Value)
	}
}

func TestAssignmentCopiesArrays(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, `
a = [1, 2, 3];
b = a;
b[0] = 9;
print a, b;
`)
	if got := out.String(); got != "[1, 2, 3] [9, 2, 3]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFailedIndexedAssignmentLeavesEnvironmentIntact(t *testing.T) {
	interp, _ := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, "a = [1, 2];")
	result, err := interp.EvaluateSource([]byte("i = 7; a[i] = 2.5;"), ProgramOptions{SkipTypecheck: true})
	if err == nil {
		t.Fatalf("expected out of bounds error")
	}
	if !result.Evaluated {
		t.Fatalf("expected evaluation to run")
	}
	val, getErr := interp.GlobalEnvironment().Get("a")
	if getErr != nil {
		t.Fatalf("Get a: %v", getErr)
	}
	arr := val.(*runtime.ArrayValue)
	if arr.Elem != runtime.ElemInt || runtime.Format(arr) != "[1, 2]" {
		t.Fatalf("array changed after failed assignment: %s", runtime.Format(arr))
	}
}

func TestUndefinedVariableWrapsEnvironmentError(t *testing.T) {
	interp, _ := newTestInterpreter(ScopeFlat)
	_, err := interp.EvaluateProgram(ast.Prog(ast.Print(ast.ID("ghost"))))
	var undefined *runtime.UndefinedNameError
	if !errors.As(err, &undefined) {
		t.Fatalf("expected UndefinedNameError, got %v", err)
	}
	if undefined.Name != "ghost" {
		t.Fatalf("unexpected name %q", undefined.Name)
	}
}

func TestSessionStatePersistsAcrossSources(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, "x = eye(2);")
	mustEvaluate(t, interp, "print (x * 3) .* x;")
	if got := out.String(); got != "[[3, 0], [0, 3]]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDiagnosticsPreventEvaluation(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	result, err := interp.EvaluateSource([]byte(`print "x"; y = [1, 2] .+ [1, 2, 3];`), ProgramOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Evaluated || out.Len() != 0 {
		t.Fatalf("program with diagnostics must not run")
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", result.Diagnostics)
	}
}

func TestSyntaxErrorsRecoverWhenAllowed(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	result, err := interp.EvaluateSource([]byte("x = ;\nprint 2;"), ProgramOptions{AllowDiagnostics: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Syntax) != 1 {
		t.Fatalf("expected one syntax diagnostic, got %v", result.Syntax)
	}
	if got := out.String(); got != "2\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestConditionRejectsMatrix(t *testing.T) {
	interp, _ := newTestInterpreter(ScopeFlat)
	_, err := interp.EvaluateSource([]byte("if (eye(2)) print 1;"), ProgramOptions{})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Line != 1 {
		t.Fatalf("expected RuntimeError on line 1, got %v", err)
	}
}

func TestRelationalOperators(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, `
print 1 < 2, 2.5 >= 3, "a" != "b", [1, 2] == [1, 2], 3 == 3.0;
`)
	if got := out.String(); got != "1 0 1 1 1\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestParseScopeMode(t *testing.T) {
	cases := map[string]ScopeMode{"": ScopeFlat, "flat": ScopeFlat, " Block ": ScopeBlock}
	for in, want := range cases {
		got, err := ParseScopeMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseScopeMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseScopeMode("dynamic"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestOversizedBuiltinIsRuntimeError(t *testing.T) {
	interp, _ := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, "a = 5;")

	result, err := interp.EvaluateSource([]byte("a = zeros(4294967296, 4294967296);\nprint a[1, 1];"), ProgramOptions{})
	if err != nil || len(result.Diagnostics) != 1 {
		t.Fatalf("expected one checker diagnostic, got %v (err %v)", result.Diagnostics, err)
	}

	_, err = interp.EvaluateSource([]byte("n = 4294967296;\na = ones(n, n);\nprint a[1, 1];"), ProgramOptions{})
	var rerr *RuntimeError
	if !errors.As(err, &rerr) || rerr.Line != 2 {
		t.Fatalf("expected RuntimeError on line 2, got %v", err)
	}
	var serr *runtime.SizeError
	if !errors.As(err, &serr) {
		t.Fatalf("expected wrapped SizeError, got %v", err)
	}
	got, err := interp.GlobalEnvironment().Get("a")
	if err != nil || runtime.Format(got) != "5" {
		t.Fatalf("a should keep its value, got %v (err %v)", got, err)
	}
}

func TestIntegerArithmeticOverflow(t *testing.T) {
	cases := []string{
		"x = 9223372036854775807 + 1;",
		"x = -9223372036854775807 - 2;",
		"x = 4611686018427387904 * 2;",
		"x = 9223372036854775807; x *= -9223372036854775807;",
	}
	for _, source := range cases {
		interp, _ := newTestInterpreter(ScopeFlat)
		_, err := interp.EvaluateSource([]byte(source), ProgramOptions{})
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			t.Fatalf("%q: expected RuntimeError, got %v", source, err)
		}
	}
	interp, out := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, "print 9223372036854775806 + 1, -4611686018427387904 * 2;")
	if got := out.String(); got != "9223372036854775807 -9223372036854775808\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestIntegerComparisonIsExact(t *testing.T) {
	interp, out := newTestInterpreter(ScopeFlat)
	mustEvaluate(t, interp, `
print 9007199254740993 == 9007199254740992, 9007199254740993 > 9007199254740992, 2 == 2.0;
`)
	if got := out.String(); got != "0 1 1\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
