package hir

import (
	"reflect"

	types "github.com/dsamoilenko/cmpy/internal/hir/types"
	"github.com/dsamoilenko/cmpy/internal/lexer"
)

type ExprHir interface {
	ExprHirNode()
	ExprType() types.Type
}

func IsNilExpr(expr ExprHir) bool {
	if expr == nil {
		return true
	}

	return reflect.ValueOf(expr).IsNil()
}

type IntExprHir struct {
	types.Type
	Value int64
}

type BoolExprHir struct {
	types.Type
	Value bool
}

type IdentExprHir struct {
	types.Type
	Name string
}

type CallExprHir struct {
	types.Type
	Name string
	Args []ExprHir
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
)

func BinOpFromTokenKind(kind lexer.TokenKind) BinaryOp {
	switch kind {
	case lexer.PLUS:
		return Add
	case lexer.MINUS:
		return Sub
	case lexer.ASTERISK:
		return Mul
	case lexer.SLASH:
		return Div
	case lexer.PERCENT:
		return Mod
	case lexer.EQ:
		return Eq
	case lexer.NEQ:
		return Ne
	case lexer.LT:
		return Lt
	case lexer.GT:
		return Gt
	case lexer.LEQ:
		return Le
	case lexer.GEQ:
		return Ge
	default:
		panic("unexpected token kind")
	}
}

type BinaryExprHir struct {
	types.Type
	Left  ExprHir
	Op    BinaryOp
	Right ExprHir
}

func (IntExprHir) ExprHirNode()    {}
func (BoolExprHir) ExprHirNode()   {}
func (IdentExprHir) ExprHirNode()  {}
func (CallExprHir) ExprHirNode()   {}
func (BinaryExprHir) ExprHirNode() {}

func (e IntExprHir) ExprType() types.Type    { return e.Type }
func (e BoolExprHir) ExprType() types.Type   { return e.Type }
func (e IdentExprHir) ExprType() types.Type  { return e.Type }
func (e CallExprHir) ExprType() types.Type   { return e.Type }
func (e BinaryExprHir) ExprType() types.Type { return e.Type }
