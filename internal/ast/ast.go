package ast

import "github.com/dsamoilenko/cmpy/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

// Program is the root of the parse tree. It exclusively owns its
// function definitions, which own their blocks, and so on down to the
// leaves: the tree is acyclic and no node has two parents.
type Program struct {
	Funcs []*FuncDeclStmt
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}
