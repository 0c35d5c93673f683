package compiler

import (
	"github.com/dsamoilenko/cmpy/internal/ast"
	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
	"github.com/dsamoilenko/cmpy/internal/emitter"
	"github.com/dsamoilenko/cmpy/internal/hir"
	"github.com/dsamoilenko/cmpy/internal/lexer"
	"github.com/dsamoilenko/cmpy/internal/parser"
	"github.com/dsamoilenko/cmpy/internal/semantic_analyzer"
)

// Result carries whatever the pipeline managed to produce. Ast is nil
// when lexing or parsing failed, Program is nil whenever Errors is
// non-empty.
type Result struct {
	Ast     *ast.Program
	Program *hir.Program
	Errors  []compiler_errors.CompilerError
}

// Compile runs the full front end over src: tokenize, parse, analyze.
// It never calls os.Exit and never panics on malformed input; all
// diagnostics come back in Result.Errors.
func Compile(fileName string, src []byte) *Result {
	eh := compiler_errors.NewErrorHandler()
	result := &Result{}

	// Lexing and parsing bail out on the first error; the analyzer
	// runs to completion and accumulates everything it finds.
	func() {
		defer compiler_errors.Recover()

		lex := lexer.NewLexer(fileName, src, eh)
		tokens := removeComments(lex.Tokenize())

		p := parser.NewParser(fileName, lexer.NewTokenScanner(tokens), eh)
		result.Ast = p.Parse()
	}()

	if result.Ast != nil {
		sa := semantic_analyzer.NewSemanticAnalyzer(eh, result.Ast)
		program := sa.Analyze()
		if !eh.HasErrors() {
			result.Program = program
		}
	}

	result.Errors = eh.Errors()
	return result
}

// Generate renders a validated program as Python source text.
func Generate(program *hir.Program) string {
	return emitter.NewEmitter(program).Emit()
}

func removeComments(tokens []lexer.Token) []lexer.Token {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == lexer.ONELINE_COMMENT || token.Kind == lexer.MULTILINE_COMMENT {
			continue
		}
		filtered = append(filtered, token)
	}

	return filtered
}
