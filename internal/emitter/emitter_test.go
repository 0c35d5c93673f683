package emitter

import (
	"testing"

	"github.com/dsamoilenko/cmpy/internal/hir"
	types "github.com/dsamoilenko/cmpy/internal/hir/types"
)

var (
	intType  = &types.IntType{}
	boolType = &types.BoolType{}
	voidType = &types.VoidType{}
)

func intLit(v int64) *hir.IntExprHir {
	return &hir.IntExprHir{Type: intType, Value: v}
}

func intVar(name string) *hir.IdentExprHir {
	return &hir.IdentExprHir{Type: intType, Name: name}
}

func fn(name string, returnType types.Type, params []types.FunctionParamType, stmts ...hir.StmtHir) *hir.FuncDeclStmtHir {
	return &hir.FuncDeclStmtHir{
		FunctionType: types.FunctionType{
			Name:       name,
			Params:     params,
			ReturnType: returnType,
		},
		Body: &hir.BlockStmtHir{Stmts: stmts},
	}
}

func emit(funcs ...*hir.FuncDeclStmtHir) string {
	return NewEmitter(&hir.Program{Funcs: funcs}).Emit()
}

func TestEmitFunction(t *testing.T) {
	got := emit(fn(
		"add",
		intType,
		[]types.FunctionParamType{
			{Name: "a", Type: intType},
			{Name: "b", Type: intType},
		},
		&hir.ReturnStmtHir{Expr: &hir.BinaryExprHir{
			Type:  intType,
			Left:  intVar("a"),
			Op:    hir.Add,
			Right: intVar("b"),
		}},
	))

	want := "def add(a, b):\n    return (a + b)\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitEmptyBody(t *testing.T) {
	got := emit(fn("noop", voidType, nil))

	want := "def noop():\n    pass\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitEmptyNestedBlocks(t *testing.T) {
	// A suite whose blocks flatten to nothing still needs a pass.
	got := emit(
		fn("f", voidType, nil,
			&hir.BlockStmtHir{Stmts: []hir.StmtHir{&hir.BlockStmtHir{}}},
		),
		fn("g", voidType,
			[]types.FunctionParamType{{Name: "b", Type: boolType}},
			&hir.WhileStmtHir{
				Cond: &hir.IdentExprHir{Type: boolType, Name: "b"},
				Body: &hir.BlockStmtHir{Stmts: []hir.StmtHir{&hir.BlockStmtHir{}}},
			},
		),
	)

	want := "def f():\n" +
		"    pass\n" +
		"\n" +
		"def g(b):\n" +
		"    while b:\n" +
		"        pass\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitFunctionSeparator(t *testing.T) {
	got := emit(
		fn("a", voidType, nil),
		fn("b", voidType, nil),
	)

	want := "def a():\n    pass\n\ndef b():\n    pass\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitDefaultValues(t *testing.T) {
	got := emit(fn(
		"defaults",
		voidType,
		nil,
		&hir.VarDeclStmtHir{Type: intType, Name: "x"},
		&hir.VarDeclStmtHir{Type: boolType, Name: "flag"},
		&hir.VarDeclStmtHir{Type: intType, Name: "y", Value: intLit(7)},
	))

	want := "def defaults():\n" +
		"    x = 0\n" +
		"    flag = False\n" +
		"    y = 7\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitIfElse(t *testing.T) {
	cond := &hir.BinaryExprHir{
		Type:  boolType,
		Left:  intVar("n"),
		Op:    hir.Lt,
		Right: intLit(0),
	}

	got := emit(fn(
		"sign",
		intType,
		[]types.FunctionParamType{{Name: "n", Type: intType}},
		&hir.IfStmtHir{
			Cond: cond,
			Then: &hir.BlockStmtHir{Stmts: []hir.StmtHir{
				&hir.ReturnStmtHir{Expr: intLit(-1)},
			}},
			Else: &hir.BlockStmtHir{Stmts: []hir.StmtHir{
				&hir.ReturnStmtHir{Expr: intLit(1)},
			}},
		},
	))

	want := "def sign(n):\n" +
		"    if (n < 0):\n" +
		"        return -1\n" +
		"    else:\n" +
		"        return 1\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitNestedIf(t *testing.T) {
	boolVar := func(name string) *hir.IdentExprHir {
		return &hir.IdentExprHir{Type: boolType, Name: name}
	}

	// else attached to the innermost if keeps its indentation level.
	got := emit(fn(
		"pick",
		voidType,
		[]types.FunctionParamType{
			{Name: "a", Type: boolType},
			{Name: "b", Type: boolType},
		},
		&hir.IfStmtHir{
			Cond: boolVar("a"),
			Then: &hir.IfStmtHir{
				Cond: boolVar("b"),
				Then: &hir.PrintStmtHir{Expr: intLit(1)},
				Else: &hir.PrintStmtHir{Expr: intLit(2)},
			},
		},
	))

	want := "def pick(a, b):\n" +
		"    if a:\n" +
		"        if b:\n" +
		"            print(1)\n" +
		"        else:\n" +
		"            print(2)\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitWhile(t *testing.T) {
	got := emit(fn(
		"count",
		voidType,
		[]types.FunctionParamType{{Name: "n", Type: intType}},
		&hir.VarDeclStmtHir{Type: intType, Name: "i", Value: intLit(0)},
		&hir.WhileStmtHir{
			Cond: &hir.BinaryExprHir{
				Type:  boolType,
				Left:  intVar("i"),
				Op:    hir.Lt,
				Right: intVar("n"),
			},
			Body: &hir.BlockStmtHir{Stmts: []hir.StmtHir{
				&hir.PrintStmtHir{Expr: intVar("i")},
				&hir.AssignStmtHir{
					Target: intVar("i"),
					Value: &hir.BinaryExprHir{
						Type:  intType,
						Left:  intVar("i"),
						Op:    hir.Add,
						Right: intLit(1),
					},
				},
			}},
		},
	))

	want := "def count(n):\n" +
		"    i = 0\n" +
		"    while (i < n):\n" +
		"        print(i)\n" +
		"        i = (i + 1)\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}

func TestEmitExprs(t *testing.T) {
	tests := []struct {
		expr hir.ExprHir
		want string
	}{
		{intLit(42), "42"},
		{&hir.BoolExprHir{Type: boolType, Value: true}, "True"},
		{&hir.BoolExprHir{Type: boolType, Value: false}, "False"},
		{intVar("x"), "x"},
		{&hir.CallExprHir{Type: intType, Name: "f", Args: []hir.ExprHir{intLit(1), intVar("x")}}, "f(1, x)"},
		{&hir.CallExprHir{Type: voidType, Name: "g"}, "g()"},
		// Integer division becomes floor division.
		{&hir.BinaryExprHir{Type: intType, Left: intVar("a"), Op: hir.Div, Right: intLit(2)}, "(a // 2)"},
		{&hir.BinaryExprHir{Type: boolType, Left: intVar("a"), Op: hir.Ne, Right: intLit(0)}, "(a != 0)"},
		{
			&hir.BinaryExprHir{
				Type: intType,
				Left: intVar("a"),
				Op:   hir.Mul,
				Right: &hir.BinaryExprHir{
					Type:  intType,
					Left:  intVar("b"),
					Op:    hir.Sub,
					Right: intVar("c"),
				},
			},
			"(a * (b - c))",
		},
	}

	e := NewEmitter(&hir.Program{})
	for _, tc := range tests {
		if got := e.emitExpr(tc.expr); got != tc.want {
			t.Errorf("emitExpr() = %q; want %q", got, tc.want)
		}
	}
}

func TestEmitVoidReturn(t *testing.T) {
	got := emit(fn("f", voidType, nil, &hir.ReturnStmtHir{}))

	want := "def f():\n    return\n"
	if got != want {
		t.Errorf("Emit() = %q; want %q", got, want)
	}
}
