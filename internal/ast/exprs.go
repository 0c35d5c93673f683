package ast

import "github.com/dsamoilenko/cmpy/internal/lexer"

type IdentExpr struct {
	StartToken *lexer.Token

	Value string
}

// LiteralExpr holds a typed constant. Type is the primitive type name
// ("int" or "bool"); Value is the canonical lexeme ("42", "true").
type LiteralExpr struct {
	StartToken *lexer.Token

	Type  string
	Value string
}

type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

type CallExpr struct {
	StartToken *lexer.Token

	Name string
	Args []Expr
}

func (e *IdentExpr) AstNode()   {}
func (e *LiteralExpr) AstNode() {}
func (e *BinaryExpr) AstNode()  {}
func (e *CallExpr) AstNode()    {}

func (e *IdentExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *LiteralExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token  { return e.StartToken }
func (e *CallExpr) FirstToken() *lexer.Token    { return e.StartToken }

func (e *IdentExpr) ExprNode()   {}
func (e *LiteralExpr) ExprNode() {}
func (e *BinaryExpr) ExprNode()  {}
func (e *CallExpr) ExprNode()    {}

// A call is valid in statement position as well ("f(x);").
func (e *CallExpr) StmtNode() {}
