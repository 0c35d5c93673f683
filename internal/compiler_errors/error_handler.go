package compiler_errors

import (
	"fmt"
	"io"
)

type Severity int

const (
	Lexical Severity = iota
	Syntax
	Semantic
)

func (s Severity) String() string {
	switch s {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	default:
		panic(fmt.Sprintf("Severity.String(): received illegal severity: %d", s))
	}
}

type CompilerError interface {
	GetMessage() string
	GetSeverity() Severity
	GetFileName() string
	GetLine() int
	GetColumn() int
}

type ErrorHandler interface {
	AddError(err CompilerError)
	FailNow()
	HasErrors() bool
	Errors() []CompilerError
}

// failNow aborts the current pass; it is recovered at the pipeline
// boundary, never surfaced to callers.
type failNow struct{}

type CompilerErrorHandler struct {
	errors []CompilerError
}

func NewErrorHandler() ErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) FailNow() {
	panic(failNow{})
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}

// Recover intercepts a FailNow bailout. Deferred at the point where a
// pass is invoked; any other panic is re-raised.
func Recover() {
	if r := recover(); r != nil {
		if _, ok := r.(failNow); !ok {
			panic(r)
		}
	}
}

func Print(w io.Writer, errors []CompilerError) {
	fmt.Fprintln(w, "Build failed with errors:")

	for _, err := range errors {
		fmt.Fprintf(
			w,
			"ERROR: %s error at %s:%d:%d: %s\n",
			err.GetSeverity(),
			err.GetFileName(),
			err.GetLine(),
			err.GetColumn(),
			err.GetMessage())
	}
}
