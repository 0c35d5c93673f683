package parser

import (
	"fmt"
	"strconv"

	"slices"

	"github.com/dsamoilenko/cmpy/internal/ast"
	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
	"github.com/dsamoilenko/cmpy/internal/lexer"
)

type UnexpectedExpectedError struct {
	Unexpected lexer.TokenKind
	Expected   lexer.TokenKind

	FileName string
	Line     int
	Column   int
	Length   int
}

func (e *UnexpectedExpectedError) GetMessage() string {
	return fmt.Sprintf("unexpected token: '%s', expected: '%s'", e.Unexpected.String(), e.Expected.String())
}

func (e *UnexpectedExpectedError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Syntax
}

func (e *UnexpectedExpectedError) GetFileName() string {
	return e.FileName
}

func (e *UnexpectedExpectedError) GetLine() int {
	return e.Line
}

func (e *UnexpectedExpectedError) GetColumn() int {
	return e.Column
}

func (e *UnexpectedExpectedError) GetLength() int {
	return e.Length
}

type UnexpectedExpectedManyError struct {
	Unexpected lexer.TokenKind
	Expected   []lexer.TokenKind

	FileName string
	Line     int
	Column   int
	Length   int
}

func (e *UnexpectedExpectedManyError) GetMessage() string {
	expectedKinds := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		expectedKinds[i] = kind.String()
	}
	return fmt.Sprintf("unexpected token: '%s', expected one of: '%s'", e.Unexpected.String(), expectedKinds)
}

func (e *UnexpectedExpectedManyError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Syntax
}

func (e *UnexpectedExpectedManyError) GetFileName() string {
	return e.FileName
}

func (e *UnexpectedExpectedManyError) GetLine() int {
	return e.Line
}

func (e *UnexpectedExpectedManyError) GetColumn() int {
	return e.Column
}

func (e *UnexpectedExpectedManyError) GetLength() int {
	return e.Length
}

type InvalidLiteralError struct {
	Value string

	FileName string
	Line     int
	Column   int
	Length   int
}

func (e *InvalidLiteralError) GetMessage() string {
	return fmt.Sprintf("integer literal out of range: '%s'", e.Value)
}

func (e *InvalidLiteralError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Syntax
}

func (e *InvalidLiteralError) GetFileName() string {
	return e.FileName
}

func (e *InvalidLiteralError) GetLine() int {
	return e.Line
}

func (e *InvalidLiteralError) GetColumn() int {
	return e.Column
}

func (e *InvalidLiteralError) GetLength() int {
	return e.Length
}

type Parser struct {
	fileName string

	scanner lexer.TokenScanner
	eh      compiler_errors.ErrorHandler

	curr *lexer.Token
}

var bindingPowerLookup map[lexer.TokenKind]int = map[lexer.TokenKind]int{
	lexer.EQ:       10,
	lexer.NEQ:      10,
	lexer.LT:       20,
	lexer.LEQ:      20,
	lexer.GT:       20,
	lexer.GEQ:      20,
	lexer.PLUS:     30,
	lexer.MINUS:    30,
	lexer.ASTERISK: 40,
	lexer.SLASH:    40,
	lexer.PERCENT:  40,
}

func NewParser(fileName string, scanner lexer.TokenScanner, eh compiler_errors.ErrorHandler) *Parser {
	return &Parser{
		fileName: fileName,
		scanner:  scanner,
		eh:       eh,
		curr:     scanner.Read(),
	}
}

func (p *Parser) Parse() *ast.Program {
	funcs := make([]*ast.FuncDeclStmt, 0)
	for p.curr.Kind != lexer.EOF {
		funcs = append(funcs, p.parseFuncDeclStmt())
	}

	return &ast.Program{
		Funcs: funcs,
	}
}

func (p *Parser) parseFuncDeclStmt() *ast.FuncDeclStmt {
	p.expectAny(lexer.TYPE_INT, lexer.TYPE_BOOL, lexer.TYPE_VOID)
	startToken := p.curr
	returnType := p.curr.Value
	p.read()

	p.expect(lexer.IDENT)
	name := p.curr.Value
	p.read()

	p.expect(lexer.LPAREN)
	p.read()

	params := make([]ast.FuncParam, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RPAREN {
		p.expectAny(lexer.TYPE_INT, lexer.TYPE_BOOL)
		paramType := p.curr.Value
		p.read()

		p.expect(lexer.IDENT)
		paramName := p.curr.Value
		p.read()

		params = append(params, ast.FuncParam{
			Name: paramName,
			Type: paramType,
		})

		p.expectAny(lexer.COMMA, lexer.RPAREN)
		if p.curr.Kind == lexer.COMMA {
			p.read()
			p.expectAny(lexer.TYPE_INT, lexer.TYPE_BOOL)
		}
	}

	p.expect(lexer.RPAREN)
	p.read()

	body := p.parseBlockStmt()

	return &ast.FuncDeclStmt{
		StartToken: startToken,

		Name:       name,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
	}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curr.Kind {
	case lexer.SEMICOLON:
		// The empty statement. As the body of a compound statement it
		// still needs a node, so it becomes an empty block.
		startToken := p.curr
		p.read()
		return &ast.BlockStmt{
			StartToken: startToken,

			Stmts: make([]ast.Stmt, 0),
		}
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.TYPE_INT, lexer.TYPE_BOOL, lexer.TYPE_VOID:
		return p.parseVarDeclStmt()
	case lexer.IDENT:
		return p.parseIdentStmt()
	}

	p.unexpected(p.curr.Kind)
	panic("unreachable")
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	p.expect(lexer.LBRACE)
	startToken := p.curr
	p.read()

	stmts := make([]ast.Stmt, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RBRACE {
		// The empty statement produces no node.
		if p.curr.Kind == lexer.SEMICOLON {
			p.read()
			continue
		}

		stmts = append(stmts, p.parseStmt())
	}

	p.expect(lexer.RBRACE)
	p.read()

	return &ast.BlockStmt{
		StartToken: startToken,

		Stmts: stmts,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	p.expect(lexer.IF)
	startToken := p.curr
	p.read()

	cond := p.parseParenExpr()
	then := p.parseStmt()

	// Shift preference: a following else always belongs to this if,
	// the nearest unmatched one.
	if p.curr.Kind != lexer.ELSE {
		return &ast.IfStmt{
			StartToken: startToken,

			Cond: cond,
			Then: then,
			Else: nil,
		}
	}

	p.read()
	elseStmt := p.parseStmt()

	return &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Then: then,
		Else: elseStmt,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	p.expect(lexer.WHILE)
	startToken := p.curr
	p.read()

	cond := p.parseParenExpr()
	body := p.parseStmt()

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	p.expect(lexer.RETURN)
	startToken := p.curr
	p.read()

	if p.curr.Kind == lexer.SEMICOLON {
		p.read()
		return &ast.ReturnStmt{
			StartToken: startToken,
		}
	}

	expr := p.parseExpr()
	p.expect(lexer.SEMICOLON)
	p.read()

	return &ast.ReturnStmt{
		StartToken: startToken,

		Expr: expr,
	}
}

func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	p.expect(lexer.PRINT)
	startToken := p.curr
	p.read()

	expr := p.parseParenExpr()

	p.expect(lexer.SEMICOLON)
	p.read()

	return &ast.PrintStmt{
		StartToken: startToken,

		Expr: expr,
	}
}

func (p *Parser) parseVarDeclStmt() *ast.VarDeclStmt {
	p.expectAny(lexer.TYPE_INT, lexer.TYPE_BOOL, lexer.TYPE_VOID)
	startToken := p.curr
	varType := p.curr.Value
	p.read()

	p.expect(lexer.IDENT)
	varName := p.curr.Value
	p.read()

	var init ast.Expr
	if p.curr.Kind == lexer.ASSIGN {
		p.read()
		init = p.parseExpr()
	}

	p.expect(lexer.SEMICOLON)
	p.read()

	return &ast.VarDeclStmt{
		StartToken: startToken,

		Name: varName,
		Type: varType,
		Init: init,
	}
}

func (p *Parser) parseIdentStmt() ast.Stmt {
	p.expect(lexer.IDENT)
	identToken := p.curr
	p.read()

	switch p.curr.Kind {
	case lexer.ASSIGN:
		p.read()
		value := p.parseExpr()

		p.expect(lexer.SEMICOLON)
		p.read()

		return &ast.AssignStmt{
			StartToken: identToken,

			Target: &ast.IdentExpr{
				StartToken: identToken,

				Value: identToken.Value,
			},
			Value: value,
		}
	case lexer.LPAREN:
		p.unread()
		call := p.parseCallExpr()

		p.expect(lexer.SEMICOLON)
		p.read()

		return call
	}

	p.eh.AddError(&UnexpectedExpectedManyError{
		Unexpected: p.curr.Kind,
		Expected:   []lexer.TokenKind{lexer.ASSIGN, lexer.LPAREN},

		FileName: p.fileName,
		Line:     p.curr.Metadata.Line,
		Column:   p.curr.Metadata.Column,
		Length:   p.curr.Metadata.Length,
	})
	p.eh.FailNow()
	panic("unreachable")
}

func (p *Parser) parseExpr() ast.Expr {
	left := p.parsePrimaryExpr()
	return p.parseBinaryExpr(left, 0)
}

func (p *Parser) parseBinaryExpr(left ast.Expr, bindingPower int) ast.Expr {
	for {
		op := p.curr
		currentBindingPower, ok := bindingPowerLookup[op.Kind]
		if !ok || currentBindingPower < bindingPower {
			return left
		}
		p.read()

		right := p.parsePrimaryExpr()

		nextBindingPower, ok := bindingPowerLookup[p.curr.Kind]
		if ok && currentBindingPower < nextBindingPower {
			right = p.parseBinaryExpr(right, currentBindingPower+10)
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.IDENT:
		p.read()
		if p.curr.Kind == lexer.LPAREN {
			p.unread()
			return p.parseCallExpr()
		}

		p.unread()
		return p.parseIdentExpr()
	case lexer.INT:
		return p.parseIntExpr()
	case lexer.BOOL:
		return p.parseBoolExpr()
	}

	p.expectAny(lexer.LPAREN, lexer.IDENT, lexer.INT, lexer.BOOL)
	panic("unreachable")
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.expect(lexer.LPAREN)
	p.read()

	expr := p.parseExpr()

	p.expect(lexer.RPAREN)
	p.read()

	return expr
}

func (p *Parser) parseCallExpr() *ast.CallExpr {
	p.expect(lexer.IDENT)
	startToken := p.curr
	name := p.curr.Value
	p.read()

	p.expect(lexer.LPAREN)
	p.read()

	args := make([]ast.Expr, 0)
	for p.scanner.HasTokens() && p.curr.Kind != lexer.RPAREN {
		args = append(args, p.parseExpr())

		p.expectAny(lexer.COMMA, lexer.RPAREN)
		if p.curr.Kind == lexer.COMMA {
			p.read()
			p.expectAny(lexer.LPAREN, lexer.IDENT, lexer.INT, lexer.BOOL)
		}
	}

	p.expect(lexer.RPAREN)
	p.read()

	return &ast.CallExpr{
		StartToken: startToken,

		Name: name,
		Args: args,
	}
}

func (p *Parser) parseIdentExpr() *ast.IdentExpr {
	p.expect(lexer.IDENT)

	startToken := p.curr
	ident := p.curr.Value
	p.read()

	return &ast.IdentExpr{
		StartToken: startToken,

		Value: ident,
	}
}

func (p *Parser) parseIntExpr() *ast.LiteralExpr {
	p.expect(lexer.INT)
	startToken := p.curr

	value, err := strconv.ParseInt(p.curr.Value, 10, 64)
	if err != nil {
		p.eh.AddError(&InvalidLiteralError{
			Value: p.curr.Value,

			FileName: p.fileName,
			Line:     p.curr.Metadata.Line,
			Column:   p.curr.Metadata.Column,
			Length:   p.curr.Metadata.Length,
		})
		p.eh.FailNow()
	}

	p.read()

	return &ast.LiteralExpr{
		StartToken: startToken,

		Type:  "int",
		Value: strconv.FormatInt(value, 10),
	}
}

func (p *Parser) parseBoolExpr() *ast.LiteralExpr {
	p.expect(lexer.BOOL)
	startToken := p.curr
	value := p.curr.Value
	p.read()

	return &ast.LiteralExpr{
		StartToken: startToken,

		Type:  "bool",
		Value: value,
	}
}

func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	return p.curr
}

func (p *Parser) unread() *lexer.Token {
	p.curr = p.scanner.Unread()
	return p.curr
}

func (p *Parser) expect(kind lexer.TokenKind) {
	if p.curr.Kind != kind {
		p.eh.AddError(&UnexpectedExpectedError{
			Unexpected: p.curr.Kind,
			Expected:   kind,

			FileName: p.fileName,
			Line:     p.curr.Metadata.Line,
			Column:   p.curr.Metadata.Column,
			Length:   p.curr.Metadata.Length,
		})
		p.eh.FailNow()
	}
}

func (p *Parser) expectAny(kinds ...lexer.TokenKind) {
	found := p.isCurrAny(kinds...)
	if found {
		return
	}

	p.eh.AddError(&UnexpectedExpectedManyError{
		Unexpected: p.curr.Kind,
		Expected:   kinds,

		FileName: p.fileName,
		Line:     p.curr.Metadata.Line,
		Column:   p.curr.Metadata.Column,
		Length:   p.curr.Metadata.Length,
	})
	p.eh.FailNow()
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}

func (p *Parser) unexpected(kind lexer.TokenKind) {
	p.eh.AddError(&UnexpectedExpectedManyError{
		Unexpected: kind,
		Expected: []lexer.TokenKind{
			lexer.SEMICOLON, lexer.LBRACE, lexer.IF, lexer.WHILE,
			lexer.RETURN, lexer.PRINT, lexer.TYPE_INT, lexer.TYPE_BOOL,
			lexer.IDENT,
		},

		FileName: p.fileName,
		Line:     p.curr.Metadata.Line,
		Column:   p.curr.Metadata.Column,
		Length:   p.curr.Metadata.Length,
	})
	p.eh.FailNow()
}
