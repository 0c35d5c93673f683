package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dsamoilenko/cmpy/internal/hir"
	types "github.com/dsamoilenko/cmpy/internal/hir/types"
)

const indentUnit = "    "

// Emitter renders a validated program as Python source text.
// The output is deterministic: the same program always produces
// byte-identical text.
type Emitter struct {
	program *hir.Program
	sb      strings.Builder
}

func NewEmitter(program *hir.Program) *Emitter {
	return &Emitter{
		program: program,
	}
}

func (e *Emitter) Emit() string {
	for i, funcDecl := range e.program.Funcs {
		if i > 0 {
			e.sb.WriteByte('\n')
		}
		e.emitFuncDecl(funcDecl)
	}

	return e.sb.String()
}

func (e *Emitter) emitFuncDecl(funcDecl *hir.FuncDeclStmtHir) {
	params := make([]string, 0, len(funcDecl.Params))
	for _, param := range funcDecl.Params {
		params = append(params, param.Name)
	}

	e.sb.WriteString(fmt.Sprintf("def %s(%s):\n", funcDecl.Name, strings.Join(params, ", ")))
	e.emitBlockStmt(funcDecl.Body, 1)
}

func (e *Emitter) emitBlockStmt(blockStmt *hir.BlockStmtHir, indent int) {
	// A block of nothing but empty blocks flattens to zero lines, and a
	// Python suite must contain at least one statement.
	if blockIsEmpty(blockStmt) {
		e.writeLine("pass", indent)
		return
	}

	for _, stmt := range blockStmt.Stmts {
		e.emitStmt(stmt, indent)
	}
}

func blockIsEmpty(blockStmt *hir.BlockStmtHir) bool {
	for _, stmt := range blockStmt.Stmts {
		inner, ok := stmt.(*hir.BlockStmtHir)
		if !ok || !blockIsEmpty(inner) {
			return false
		}
	}

	return true
}

func (e *Emitter) emitStmt(stmt hir.StmtHir, indent int) {
	switch stmt := stmt.(type) {
	case *hir.BlockStmtHir:
		// Python has no bare block statement, so nested blocks are
		// flattened into the enclosing suite.
		for _, inner := range stmt.Stmts {
			e.emitStmt(inner, indent)
		}
	case *hir.VarDeclStmtHir:
		e.emitVarDeclStmt(stmt, indent)
	case *hir.AssignStmtHir:
		e.writeLine(fmt.Sprintf("%s = %s", stmt.Target.Name, e.emitExpr(stmt.Value)), indent)
	case *hir.IfStmtHir:
		e.emitIfStmt(stmt, indent)
	case *hir.WhileStmtHir:
		e.writeLine(fmt.Sprintf("while %s:", e.emitExpr(stmt.Cond)), indent)
		e.emitNestedStmt(stmt.Body, indent+1)
	case *hir.ReturnStmtHir:
		if hir.IsNilExpr(stmt.Expr) {
			e.writeLine("return", indent)
		} else {
			e.writeLine(fmt.Sprintf("return %s", e.emitExpr(stmt.Expr)), indent)
		}
	case *hir.PrintStmtHir:
		e.writeLine(fmt.Sprintf("print(%s)", e.emitExpr(stmt.Expr)), indent)
	case *hir.ExprStmtHir:
		e.writeLine(e.emitExpr(stmt.Expr), indent)
	default:
		panic("not implemented")
	}
}

func (e *Emitter) emitVarDeclStmt(varDeclStmt *hir.VarDeclStmtHir, indent int) {
	value := e.defaultValue(varDeclStmt.Type)
	if !hir.IsNilExpr(varDeclStmt.Value) {
		value = e.emitExpr(varDeclStmt.Value)
	}

	e.writeLine(fmt.Sprintf("%s = %s", varDeclStmt.Name, value), indent)
}

func (e *Emitter) emitIfStmt(ifStmt *hir.IfStmtHir, indent int) {
	e.writeLine(fmt.Sprintf("if %s:", e.emitExpr(ifStmt.Cond)), indent)
	e.emitNestedStmt(ifStmt.Then, indent+1)

	if hir.IsNilStmt(ifStmt.Else) {
		return
	}

	e.writeLine("else:", indent)
	e.emitNestedStmt(ifStmt.Else, indent+1)
}

// emitNestedStmt writes the body of a compound statement, which must
// produce at least one line for the suite to be valid Python.
func (e *Emitter) emitNestedStmt(stmt hir.StmtHir, indent int) {
	if blockStmt, ok := stmt.(*hir.BlockStmtHir); ok {
		e.emitBlockStmt(blockStmt, indent)
		return
	}

	e.emitStmt(stmt, indent)
}

func (e *Emitter) emitExpr(expr hir.ExprHir) string {
	switch expr := expr.(type) {
	case *hir.IntExprHir:
		return strconv.FormatInt(expr.Value, 10)
	case *hir.BoolExprHir:
		if expr.Value {
			return "True"
		}
		return "False"
	case *hir.IdentExprHir:
		return expr.Name
	case *hir.CallExprHir:
		args := make([]string, 0, len(expr.Args))
		for _, arg := range expr.Args {
			args = append(args, e.emitExpr(arg))
		}
		return fmt.Sprintf("%s(%s)", expr.Name, strings.Join(args, ", "))
	case *hir.BinaryExprHir:
		return fmt.Sprintf(
			"(%s %s %s)",
			e.emitExpr(expr.Left),
			pyBinaryOp(expr.Op),
			e.emitExpr(expr.Right))
	default:
		panic("not implemented")
	}
}

// pyBinaryOp maps an operator onto its Python spelling. Division maps
// onto Python's floor division so integer arithmetic stays integral.
func pyBinaryOp(op hir.BinaryOp) string {
	switch op {
	case hir.Add:
		return "+"
	case hir.Sub:
		return "-"
	case hir.Mul:
		return "*"
	case hir.Div:
		return "//"
	case hir.Mod:
		return "%"
	case hir.Eq:
		return "=="
	case hir.Ne:
		return "!="
	case hir.Lt:
		return "<"
	case hir.Gt:
		return ">"
	case hir.Le:
		return "<="
	case hir.Ge:
		return ">="
	default:
		panic("unexpected binary operator")
	}
}

func (e *Emitter) defaultValue(t types.Type) string {
	switch t.(type) {
	case *types.IntType:
		return "0"
	case *types.BoolType:
		return "False"
	default:
		panic("unexpected variable type")
	}
}

func (e *Emitter) writeLine(line string, indent int) {
	e.sb.WriteString(strings.Repeat(indentUnit, indent))
	e.sb.WriteString(line)
	e.sb.WriteByte('\n')
}
