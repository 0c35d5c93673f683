package hir

import (
	"reflect"

	types "github.com/dsamoilenko/cmpy/internal/hir/types"
)

type StmtHir interface {
	StmtHirNode()
}

func IsNilStmt(stmt StmtHir) bool {
	if stmt == nil {
		return true
	}

	return reflect.ValueOf(stmt).IsNil()
}

type BlockStmtHir struct {
	Stmts []StmtHir
}

type FuncDeclStmtHir struct {
	types.FunctionType
	Body *BlockStmtHir
}

// VarDeclStmtHir with a nil Value declares the variable without an
// initializer; the emitter binds it to the type's default value.
type VarDeclStmtHir struct {
	Type  types.Type
	Name  string
	Value ExprHir
}

type AssignStmtHir struct {
	Target *IdentExprHir
	Value  ExprHir
}

type IfStmtHir struct {
	Cond ExprHir
	Then StmtHir
	Else StmtHir
}

type WhileStmtHir struct {
	Cond ExprHir
	Body StmtHir
}

type ReturnStmtHir struct {
	Expr ExprHir
}

type PrintStmtHir struct {
	Expr ExprHir
}

type ExprStmtHir struct {
	Expr ExprHir
}

func (BlockStmtHir) StmtHirNode()    {}
func (FuncDeclStmtHir) StmtHirNode() {}
func (VarDeclStmtHir) StmtHirNode()  {}
func (AssignStmtHir) StmtHirNode()   {}
func (IfStmtHir) StmtHirNode()       {}
func (WhileStmtHir) StmtHirNode()    {}
func (ReturnStmtHir) StmtHirNode()   {}
func (PrintStmtHir) StmtHirNode()    {}
func (ExprStmtHir) StmtHirNode()     {}
