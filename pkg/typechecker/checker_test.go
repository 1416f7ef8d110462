package typechecker

import (
	"strings"
	"testing"

	"mlang/interpreter-go/pkg/ast"
	"mlang/interpreter-go/pkg/parser"
)

func checkSource(t *testing.T, c *Checker, source string) []Diagnostic {
	t.Helper()
	program, syntax := parser.ParseProgram([]byte(source))
	if len(syntax) != 0 {
		t.Fatalf("unexpected syntax diagnostics: %v", syntax)
	}
	diags, err := c.CheckProgram(program)
	if err != nil {
		t.Fatalf("CheckProgram returned error: %v", err)
	}
	return diags
}

func expectDiagnostic(t *testing.T, diags []Diagnostic, want string) Diagnostic {
	t.Helper()
	for _, d := range diags {
		if strings.Contains(d.Message, want) {
			return d
		}
	}
	t.Fatalf("expected diagnostic containing %q, got %v", want, diags)
	return Diagnostic{}
}

func expectSymbolType(t *testing.T, c *Checker, name, want string) {
	t.Helper()
	sym, ok := c.Global().Lookup(name)
	if !ok {
		t.Fatalf("expected %s to be defined", name)
	}
	if got := typeName(sym.Type); got != want {
		t.Fatalf("expected %s to have type %s, got %s", name, want, got)
	}
}

func TestCheckerMatrixMultiplyShapes(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
A = [[1, 2, 3], [4, 5, 6]];
B = [[1, 2], [3, 4], [5, 6]];
C = A * B;
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "A", "Matrix(2, 3, Int)")
	expectSymbolType(t, c, "C", "Matrix(2, 2, Int)")
}

func TestCheckerRejectsIncompatibleMatrixMultiply(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
A = [[1, 2, 3], [4, 5, 6]];
D = A * A;
`)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	d := expectDiagnostic(t, diags, "Incompatible dimensions (2, 3) and (2, 3) for matrix multiplication")
	if d.Line() != 3 {
		t.Fatalf("expected diagnostic on line 3, got %d", d.Line())
	}
	expectSymbolType(t, c, "D", "Unknown")
}

func TestCheckerElementWiseDimensionMismatch(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "x = [1, 2, 3] .+ [1, 2];")
	expectDiagnostic(t, diags, "Incompatible dimensions (3) and (2) for operation '.+'")
}

func TestCheckerElementWiseRequiresShapedOperands(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "x = 1 .* [1, 2];")
	expectDiagnostic(t, diags, "Element-wise operation '.*' requires matrix/vector operands")
}

func TestCheckerElementWiseElementTypePromotion(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
x = [4, 6] ./ [2, 3];
y = [4, 6] ./ [2.0, 3.0];
z = [[1, 2]] .* [[0.5, 1.5]];
w = [1, 2] .- [3, 4];
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "x", "Vector(2, Int)")
	expectSymbolType(t, c, "y", "Vector(2, Float)")
	expectSymbolType(t, c, "z", "Matrix(1, 2, Float)")
	expectSymbolType(t, c, "w", "Vector(2, Int)")
}

func TestCheckerRejectsOversizedBuiltins(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "a = zeros(4294967296, 4294967296);\nb = ones(1000000, 1000000);\nc = eye(3);")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", diags)
	}
	d := expectDiagnostic(t, diags, "exceeds the limit")
	if d.Line() != 1 {
		t.Fatalf("expected diagnostic on line 1, got %d", d.Line())
	}
	expectSymbolType(t, c, "a", "Unknown")
	expectSymbolType(t, c, "c", "Matrix(3, 3, Int)")
}

func TestCheckerScalarMatrixArithmetic(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
a = 1 + [1, 2];
b = 2 / [1, 2];
c = [1, 2] / 2;
d = 2 * [1, 2];
`)
	expectDiagnostic(t, diags, "Cannot perform '+' on scalar and matrix/vector")
	expectDiagnostic(t, diags, "Cannot divide scalar by matrix")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "c", "Vector(2, Float)")
	expectSymbolType(t, c, "d", "Vector(2, Int)")
}

func TestCheckerDotProduct(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "d = [1, 2] * [3, 4];")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "d", "Float")
}

func TestCheckerBlockScopedAssignment(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
if (1) {
    a = 5;
}
print a;
`)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	d := expectDiagnostic(t, diags, "Undefined variable 'a'")
	if got := DescribeDiagnostic(d); got != "Line 5: Undefined variable 'a'" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestCheckerInnerScopeSeesOuterBindings(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
x = 1;
while (x < 3) {
    x += 1;
    y = x * 2;
}
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if _, ok := c.Global().Lookup("y"); ok {
		t.Fatalf("expected y to stay local to the loop body")
	}
}

func TestCheckerLoopVariableIsLocal(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
for i = 1:3 {
    print i;
}
print i;
`)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	expectDiagnostic(t, diags, "Undefined variable 'i'")
}

func TestCheckerBreakOutsideLoop(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
break;
while (1) { if (1) break; else continue; }
continue;
`)
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", diags)
	}
	expectDiagnostic(t, diags, "'break' used outside of loop")
	expectDiagnostic(t, diags, "'continue' used outside of loop")
}

func TestCheckerRaggedMatrixLiteral(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "m = [[1, 2], [3]];")
	expectDiagnostic(t, diags, "Row 2 has 1 elements, expected 2")
	expectSymbolType(t, c, "m", "Unknown")
}

func TestCheckerIndexing(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
v = [1, 2, 3];
a = v[5];
b = v[1, 1];
s = 4;
d = s[0];
e = v[1.5];
f = v[1 + 1];
`)
	expectDiagnostic(t, diags, "Index 5 out of bounds for 'v' (dimension size is 3)")
	expectDiagnostic(t, diags, "Wrong number of indices for 'v': got 2, expected 1")
	expectDiagnostic(t, diags, "Variable 's' is not indexable")
	expectDiagnostic(t, diags, "Index must be an integer")
	if len(diags) != 4 {
		t.Fatalf("expected four diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "f", "Int")
}

func TestCheckerUnknownSuppressesCascades(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
x = y + 1;
z = x * [1, 2];
w = z';
`)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	expectDiagnostic(t, diags, "Undefined variable 'y'")
}

func TestCheckerBuiltins(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
I = eye(3);
Z = zeros(2, 3);
O = ones(1 + 1);
T = Z';
E = eye(2, 3);
N = zeros(0);
`)
	expectDiagnostic(t, diags, "Function 'eye' requires square dimensions, got 2x3")
	expectDiagnostic(t, diags, "Argument 1 of 'zeros' must be positive")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "I", "Matrix(3, 3, Int)")
	expectSymbolType(t, c, "Z", "Matrix(2, 3, Int)")
	expectSymbolType(t, c, "O", "Matrix(2, 2, Int)")
	expectSymbolType(t, c, "T", "Matrix(3, 2, Int)")
	expectSymbolType(t, c, "E", "Matrix(2, 2, Int)")
}

func TestCheckerBuiltinWithRuntimeArgumentIsUnknown(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
n = 3;
M = zeros(n);
x = M[10, 10];
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "M", "Unknown")
}

func TestCheckerCompoundAssignment(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
x = 1;
x += 2.5;
y -= 1;
`)
	expectDiagnostic(t, diags, "Undefined variable 'y'")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	expectSymbolType(t, c, "x", "Float")
}

func TestCheckerIndexedAssignment(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
m = zeros(2);
m[0, 1] = 3;
m[1, 1] = [1, 2];
q[0] = 1;
`)
	expectDiagnostic(t, diags, "Cannot assign matrix/vector to a single element of 'm'")
	expectDiagnostic(t, diags, "Undefined variable 'q'")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", diags)
	}
}

func TestCheckerRangeBounds(t *testing.T) {
	c := New()
	diags := checkSource(t, c, "for i = 1.5:3 print i;")
	expectDiagnostic(t, diags, "Range start must be an integer")
}

func TestCheckerGlobalScopePersistsAcrossRuns(t *testing.T) {
	c := New()
	if diags := checkSource(t, c, "x = [1, 2];"); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if diags := checkSource(t, c, "y = x .* x;"); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	expectSymbolType(t, c, "y", "Vector(2, Int)")
}

func TestCheckerRecordsInferredTypes(t *testing.T) {
	c := New()
	expr := ast.Bin("*", ast.Call("eye", ast.Int(2)), ast.Flt(0.5))
	program := ast.Prog(ast.Assign(ast.ID("m"), expr))
	diags, err := c.CheckProgram(program)
	if err != nil {
		t.Fatalf("CheckProgram returned error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	typ, ok := c.TypeOf(expr)
	if !ok {
		t.Fatalf("expected inferred type for expression")
	}
	if !TypesEqual(typ, MatrixType{Rows: 2, Cols: 2, Elem: floatType}) {
		t.Fatalf("unexpected type %s", typeName(typ))
	}
}

func TestCheckerVectorLiteralRules(t *testing.T) {
	c := New()
	diags := checkSource(t, c, `
e = [];
s = ["a", "b"];
mix = [1, "b"];
`)
	expectDiagnostic(t, diags, "Vector elements must be numeric (got String)")
	expectDiagnostic(t, diags, "Inconsistent types in vector initialization")
	expectSymbolType(t, c, "e", "Vector(0, Unknown)")
	expectSymbolType(t, c, "mix", "Vector(2, Int)")
}
