package semantic_analyzer

import (
	"testing"

	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
	"github.com/dsamoilenko/cmpy/internal/hir"
	types "github.com/dsamoilenko/cmpy/internal/hir/types"
	"github.com/dsamoilenko/cmpy/internal/lexer"
	"github.com/dsamoilenko/cmpy/internal/parser"
)

func analyze(t *testing.T, src string) (*hir.Program, []compiler_errors.CompilerError) {
	t.Helper()

	eh := compiler_errors.NewErrorHandler()
	tokens := lexer.NewLexer("test.src", []byte(src), eh).Tokenize()
	program := parser.NewParser("test.src", lexer.NewTokenScanner(tokens), eh).Parse()
	if eh.HasErrors() {
		t.Fatalf("analyze(%q): parsing failed: %v", src, eh.Errors())
	}

	return NewSemanticAnalyzer(eh, program).Analyze(), eh.Errors()
}

func analyzeValid(t *testing.T, src string) *hir.Program {
	t.Helper()

	program, errors := analyze(t, src)
	if len(errors) > 0 {
		t.Fatalf("analyze(%q) produced errors: %v", src, errors)
	}

	return program
}

func TestAnalyzeValidProgram(t *testing.T) {
	program := analyzeValid(t, `
		int add(int a, int b) {
			return a + b;
		}

		void main() {
			int x = add(2, 3);
			print(x);
		}
	`)

	if len(program.FuncPrototypes) != 2 {
		t.Fatalf("got %d prototypes; want 2", len(program.FuncPrototypes))
	}
	if len(program.Funcs) != 2 {
		t.Fatalf("got %d functions; want 2", len(program.Funcs))
	}

	add := program.Funcs[0]
	if add.Name != "add" || len(add.Params) != 2 {
		t.Errorf("first function = %s with %d params; want add with 2", add.Name, len(add.Params))
	}
	if _, ok := add.ReturnType.(*types.IntType); !ok {
		t.Errorf("add return type is %T; want *types.IntType", add.ReturnType)
	}

	returnStmt, ok := add.Body.Stmts[0].(*hir.ReturnStmtHir)
	if !ok {
		t.Fatalf("add body statement is %T; want *hir.ReturnStmtHir", add.Body.Stmts[0])
	}
	binary, ok := returnStmt.Expr.(*hir.BinaryExprHir)
	if !ok {
		t.Fatalf("return expression is %T; want *hir.BinaryExprHir", returnStmt.Expr)
	}
	if binary.Op != hir.Add {
		t.Errorf("op = %v; want Add", binary.Op)
	}
	if _, ok := binary.ExprType().(*types.IntType); !ok {
		t.Errorf("addition has type %T; want *types.IntType", binary.ExprType())
	}

	main := program.Funcs[1]
	varDecl, ok := main.Body.Stmts[0].(*hir.VarDeclStmtHir)
	if !ok {
		t.Fatalf("main body statement is %T; want *hir.VarDeclStmtHir", main.Body.Stmts[0])
	}
	call, ok := varDecl.Value.(*hir.CallExprHir)
	if !ok {
		t.Fatalf("initializer is %T; want *hir.CallExprHir", varDecl.Value)
	}
	if _, ok := call.ExprType().(*types.IntType); !ok {
		t.Errorf("call has type %T; want *types.IntType", call.ExprType())
	}
}

func TestAnalyzeCallBeforeDeclaration(t *testing.T) {
	analyzeValid(t, `
		void main() {
			print(later(1));
		}

		int later(int n) {
			return n;
		}
	`)
}

func TestAnalyzeShadowing(t *testing.T) {
	analyzeValid(t, `
		void main() {
			int x = 1;
			{
				int x = 2;
				print(x);
			}
			print(x);
		}
	`)
}

func TestAnalyzeRelationalAndEqualityTypes(t *testing.T) {
	program := analyzeValid(t, `
		void main(int a, int b, bool p, bool q) {
			bool r = a < b;
			bool s = a == b;
			bool t = p != q;
			int u = a % b;
		}
	`)

	stmts := program.Funcs[0].Body.Stmts
	for i := 0; i < 3; i++ {
		decl := stmts[i].(*hir.VarDeclStmtHir)
		if _, ok := decl.Value.ExprType().(*types.BoolType); !ok {
			t.Errorf("declaration %d initializer has type %s; want bool", i, decl.Value.ExprType().Type())
		}
	}
	if decl := stmts[3].(*hir.VarDeclStmtHir); decl.Value.ExprType().Type() != "int" {
		t.Errorf("remainder has type %s; want int", decl.Value.ExprType().Type())
	}
}

func TestAnalyzeRedeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"variable in the same scope", "void f() { int x = 1; bool x; }"},
		{"parameter and local", "void f(int x) { int x = 1; }"},
		{"duplicate parameter", "void f(int x, bool x) { }"},
		{"duplicate function", "void f() { } int f() { return 1; }"},
	}

	for _, tc := range tests {
		_, errors := analyze(t, tc.src)
		if len(errors) != 1 {
			t.Errorf("%s: got %d errors; want 1: %v", tc.name, len(errors), errors)
			continue
		}
		if _, ok := errors[0].(*RedeclarationError); !ok {
			t.Errorf("%s: error is %T; want *RedeclarationError", tc.name, errors[0])
		}
	}
}

func TestAnalyzeUndeclaredIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown variable", "void f() { print(x); }"},
		{"assignment to unknown variable", "void f() { x = 1; }"},
		{"unknown function", "void f() { g(); }"},
		{"variable out of scope", "void f() { { int x = 1; } print(x); }"},
	}

	for _, tc := range tests {
		_, errors := analyze(t, tc.src)
		if len(errors) != 1 {
			t.Errorf("%s: got %d errors; want 1: %v", tc.name, len(errors), errors)
			continue
		}
		if _, ok := errors[0].(*UndeclaredIdentifierError); !ok {
			t.Errorf("%s: error is %T; want *UndeclaredIdentifierError", tc.name, errors[0])
		}
	}
}

func TestAnalyzeTypeMismatches(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"initializer", "void f() { int x = true; }"},
		{"assignment", "void f() { bool b; b = 1; }"},
		{"void variable", "void f() { void v; }"},
		{"if condition", "void f() { if (1) { } }"},
		{"while condition", "void f() { while (0) { } }"},
		{"arithmetic on bool", "void f() { int x = true + 1; }"},
		{"comparison on bool", "void f(bool a, bool b) { bool c = a < b; }"},
		{"mixed equality", "void f() { bool c = 1 == true; }"},
		{"return value from void", "void f() { return 1; }"},
		{"bare return from int", "int f() { return; }"},
		{"wrong return type", "int f() { return true; }"},
		{"wrong argument type", "int g(int n) { return n; } void f() { g(true); }"},
		{"print void call", "void g() { } void f() { print(g()); }"},
		{"void call as condition", "void g() { } void f() { if (g()) { } }"},
	}

	for _, tc := range tests {
		_, errors := analyze(t, tc.src)
		if len(errors) != 1 {
			t.Errorf("%s: got %d errors; want 1: %v", tc.name, len(errors), errors)
			continue
		}
		if _, ok := errors[0].(*TypeMismatchError); !ok {
			t.Errorf("%s: error is %T; want *TypeMismatchError", tc.name, errors[0])
		}
	}
}

func TestAnalyzeLocalsAreInvisibleAcrossFunctions(t *testing.T) {
	_, errors := analyze(t, `
		void g() { int x = 1; }
		void f() { print(x); }
	`)

	if len(errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(errors), errors)
	}
	if _, ok := errors[0].(*UndeclaredIdentifierError); !ok {
		t.Fatalf("error is %T; want *UndeclaredIdentifierError", errors[0])
	}
}

func TestAnalyzeArityMismatch(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantGot int
	}{
		{"too few", "int add(int a, int b) { return a + b; } void f() { add(1); }", 1},
		{"too many", "int add(int a, int b) { return a + b; } void f() { add(1, 2, 3); }", 3},
	}

	for _, tc := range tests {
		_, errors := analyze(t, tc.src)
		if len(errors) != 1 {
			t.Errorf("%s: got %d errors; want 1: %v", tc.name, len(errors), errors)
			continue
		}

		arityErr, ok := errors[0].(*ArityMismatchError)
		if !ok {
			t.Errorf("%s: error is %T; want *ArityMismatchError", tc.name, errors[0])
			continue
		}
		if arityErr.Callee != "add" || arityErr.Want != 2 || arityErr.Got != tc.wantGot {
			t.Errorf("%s: error = %+v; want add expecting 2, got %d", tc.name, arityErr, tc.wantGot)
		}
	}
}

func TestAnalyzeAccumulatesErrors(t *testing.T) {
	_, errors := analyze(t, `
		void f() {
			int x = true;
			y = 1;
			if (2) { }
		}
	`)

	if len(errors) != 3 {
		t.Fatalf("got %d errors; want all 3 reported: %v", len(errors), errors)
	}
}

func TestAnalyzeErrorPositions(t *testing.T) {
	_, errors := analyze(t, "void f() {\n\tint x = true;\n}")

	if len(errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(errors), errors)
	}
	if errors[0].GetLine() != 2 {
		t.Errorf("error line = %d; want 2", errors[0].GetLine())
	}
	if errors[0].GetSeverity() != compiler_errors.Semantic {
		t.Errorf("severity = %s; want semantic", errors[0].GetSeverity())
	}
}
