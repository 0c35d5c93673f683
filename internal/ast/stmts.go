package ast

import "github.com/dsamoilenko/cmpy/internal/lexer"

type BlockStmt struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

type FuncDeclStmt struct {
	StartToken *lexer.Token

	Name       string
	ReturnType string
	Params     []FuncParam
	Body       *BlockStmt
}

type FuncParam struct {
	Name string
	Type string
}

type VarDeclStmt struct {
	StartToken *lexer.Token

	Name string
	Type string
	Init Expr
}

type AssignStmt struct {
	StartToken *lexer.Token

	Target *IdentExpr
	Value  Expr
}

type IfStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body Stmt
}

type ReturnStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type PrintStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

func (b *BlockStmt) AstNode()    {}
func (f *FuncDeclStmt) AstNode() {}
func (v *VarDeclStmt) AstNode()  {}
func (a *AssignStmt) AstNode()   {}
func (i *IfStmt) AstNode()       {}
func (w *WhileStmt) AstNode()    {}
func (r *ReturnStmt) AstNode()   {}
func (p *PrintStmt) AstNode()    {}

func (b *BlockStmt) FirstToken() *lexer.Token    { return b.StartToken }
func (f *FuncDeclStmt) FirstToken() *lexer.Token { return f.StartToken }
func (v *VarDeclStmt) FirstToken() *lexer.Token  { return v.StartToken }
func (a *AssignStmt) FirstToken() *lexer.Token   { return a.StartToken }
func (i *IfStmt) FirstToken() *lexer.Token       { return i.StartToken }
func (w *WhileStmt) FirstToken() *lexer.Token    { return w.StartToken }
func (r *ReturnStmt) FirstToken() *lexer.Token   { return r.StartToken }
func (p *PrintStmt) FirstToken() *lexer.Token    { return p.StartToken }

func (b *BlockStmt) StmtNode()    {}
func (f *FuncDeclStmt) StmtNode() {}
func (v *VarDeclStmt) StmtNode()  {}
func (a *AssignStmt) StmtNode()   {}
func (i *IfStmt) StmtNode()       {}
func (w *WhileStmt) StmtNode()    {}
func (r *ReturnStmt) StmtNode()   {}
func (p *PrintStmt) StmtNode()    {}
