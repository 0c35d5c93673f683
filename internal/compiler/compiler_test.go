package compiler

import (
	"strings"
	"testing"

	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
)

func compileValid(t *testing.T, src string) string {
	t.Helper()

	result := Compile("test.src", []byte(src))
	if len(result.Errors) > 0 {
		t.Fatalf("Compile(%q) produced errors: %v", src, result.Errors)
	}

	return Generate(result.Program)
}

func TestCompileAndGenerate(t *testing.T) {
	got := compileValid(t, `
		int add(int a, int b) {
			return a + b;
		}

		void main() {
			int x = add(2, 3);
			print(x);
		}
	`)

	want := "def add(a, b):\n" +
		"    return (a + b)\n" +
		"\n" +
		"def main():\n" +
		"    x = add(2, 3)\n" +
		"    print(x)\n"
	if got != want {
		t.Errorf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileDanglingElse(t *testing.T) {
	got := compileValid(t, `
		void f(bool a, bool b) {
			if (a) if (b) print(1); else print(2);
		}
	`)

	want := "def f(a, b):\n" +
		"    if a:\n" +
		"        if b:\n" +
		"            print(1)\n" +
		"        else:\n" +
		"            print(2)\n"
	if got != want {
		t.Errorf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileCommentsIgnored(t *testing.T) {
	got := compileValid(t, `
		// entry point
		void main() {
			/* nothing
			   to do */
			print(1);
		}
	`)

	want := "def main():\n    print(1)\n"
	if got != want {
		t.Errorf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileControlFlow(t *testing.T) {
	got := compileValid(t, `
		void countdown(int n) {
			while (n > 0) {
				print(n);
				n = n - 1;
			}
			if (n == 0) {
				print(0);
			} else {
				print(0 - 1);
			}
		}
	`)

	want := "def countdown(n):\n" +
		"    while (n > 0):\n" +
		"        print(n)\n" +
		"        n = (n - 1)\n" +
		"    if (n == 0):\n" +
		"        print(0)\n" +
		"    else:\n" +
		"        print((0 - 1))\n"
	if got != want {
		t.Errorf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompileEmptySuites(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"nested empty block",
			"void f() { {} }",
			"def f():\n    pass\n",
		},
		{
			"empty block in a loop",
			"void f(bool b) { while (b) { {} } }",
			"def f(b):\n    while b:\n        pass\n",
		},
		{
			"empty statement as if body",
			"void f(bool a) { if (a) ; }",
			"def f(a):\n    if a:\n        pass\n",
		},
	}

	for _, tc := range tests {
		if got := compileValid(t, tc.src); got != tc.want {
			t.Errorf("%s: generated %q; want %q", tc.name, got, tc.want)
		}
	}
}

func TestCompileMissingArgumentSeparator(t *testing.T) {
	result := Compile("test.src", []byte(`
		int add(int a, int b) { return a + b; }
		void main() { print(add(1 2)); }
	`))

	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].GetSeverity() != compiler_errors.Syntax {
		t.Errorf("severity = %s; want syntax", result.Errors[0].GetSeverity())
	}
	if result.Program != nil {
		t.Error("Program is non-nil after a syntax failure")
	}
}

func TestCompileDeterministic(t *testing.T) {
	src := `
		void main() {
			int total = 0;
			int i = 10;
			while (i > 0) {
				total = total + i * i;
				i = i - 1;
			}
			print(total);
		}
	`

	first := compileValid(t, src)
	second := compileValid(t, src)
	if first != second {
		t.Error("compiling the same source twice produced different output")
	}
}

func TestCompileLexicalError(t *testing.T) {
	result := Compile("test.src", []byte("void main() { int x = 1 @ 2; }"))

	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].GetSeverity() != compiler_errors.Lexical {
		t.Errorf("severity = %s; want lexical", result.Errors[0].GetSeverity())
	}
	if result.Ast != nil {
		t.Error("Ast is non-nil after a lexical failure")
	}
	if result.Program != nil {
		t.Error("Program is non-nil after a lexical failure")
	}
}

func TestCompileSyntaxError(t *testing.T) {
	result := Compile("test.src", []byte("void main() { print(1) }"))

	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].GetSeverity() != compiler_errors.Syntax {
		t.Errorf("severity = %s; want syntax", result.Errors[0].GetSeverity())
	}
	if result.Ast != nil {
		t.Error("Ast is non-nil after a syntax failure")
	}
}

func TestCompileSemanticErrorsAccumulate(t *testing.T) {
	result := Compile("test.src", []byte(`
		void main() {
			int x = true;
			y = 2;
		}
	`))

	if len(result.Errors) != 2 {
		t.Fatalf("got %d errors; want both reported: %v", len(result.Errors), result.Errors)
	}
	for _, err := range result.Errors {
		if err.GetSeverity() != compiler_errors.Semantic {
			t.Errorf("severity = %s; want semantic", err.GetSeverity())
		}
	}

	if result.Ast == nil {
		t.Error("Ast is nil; parsing succeeded and the tree should survive")
	}
	if result.Program != nil {
		t.Error("Program is non-nil; semantic failures must not produce one")
	}
}

func TestCompileErrorPrinting(t *testing.T) {
	result := Compile("main.src", []byte("void main() { print(x); }"))
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors; want 1: %v", len(result.Errors), result.Errors)
	}

	var sb strings.Builder
	compiler_errors.Print(&sb, result.Errors)

	out := sb.String()
	if !strings.Contains(out, "Build failed with errors:") {
		t.Errorf("output is missing the header:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: semantic error at main.src:1:21: variable 'x' not declared") {
		t.Errorf("output is missing the diagnostic:\n%s", out)
	}
}
