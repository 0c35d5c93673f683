package lexer

import (
	"fmt"

	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
)

type LexerError struct {
	Message string

	FileName string
	Line     int
	Column   int
}

func newUnexpectedError(unexpected byte, fileName string, line, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf("unexpected character: '%s'", string(unexpected)),

		FileName: fileName,
		Line:     line,
		Column:   column,
	}
}

func newUnterminatedCommentError(fileName string, line, column int) *LexerError {
	return &LexerError{
		Message: "expected '*/' before end of file",

		FileName: fileName,
		Line:     line,
		Column:   column,
	}
}

func (e *LexerError) GetMessage() string { return e.Message }
func (e *LexerError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.Lexical
}
func (e *LexerError) GetFileName() string { return e.FileName }
func (e *LexerError) GetLine() int        { return e.Line }
func (e *LexerError) GetColumn() int      { return e.Column }

type Lexer struct {
	fileName string
	buf      []byte
	pos      int

	line, col int

	eh compiler_errors.ErrorHandler
}

func NewLexer(fileName string, buf []byte, eh compiler_errors.ErrorHandler) *Lexer {
	return &Lexer{
		fileName: fileName,
		buf:      buf,
		pos:      0,

		line: 1,
		col:  1,

		eh: eh,
	}
}

func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for l.hasChars() {
		if l.isCurrSkippable() {
			l.advance()
			continue
		}

		line, col := l.line, l.col

		var token Token
		switch {
		case l.isCurrDigit():
			token = l.processNumber()

		case l.isCurrIdentifier():
			token = l.processIdentifier()

		case l.isCurrPunctuation():
			token = l.processPunctuation()

		default:
			l.eh.AddError(newUnexpectedError(l.read(), l.fileName, line, col))
			l.eh.FailNow()
		}

		token.Metadata = TokenMetadata{
			FileName: l.fileName,
			Line:     line,
			Column:   col,
			Length:   len(token.Value),
		}
		tokens = append(tokens, token)

		l.advance()
	}

	tokens = append(tokens, Token{
		Kind:  EOF,
		Value: EOF.String(),
		Metadata: TokenMetadata{
			FileName: l.fileName,
			Line:     l.line,
			Column:   l.col,
		},
	})

	return tokens
}

func (l *Lexer) isCurrIdentifier() bool {
	return (l.read() >= 'a' && l.read() <= 'z') || (l.read() >= 'A' && l.read() <= 'Z') || l.read() == '_'
}

func (l *Lexer) isCurrDigit() bool {
	return l.read() >= '0' && l.read() <= '9'
}

func (l *Lexer) isCurrPunctuation() bool {
	switch l.read() {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '(', ')', '{', '}', ';', ',':
		return true
	}
	return false
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func (l *Lexer) processIdentifier() Token {
	identifierBuf := make([]byte, 0)
	identifierBuf = append(identifierBuf, l.read())
	l.advance()

	for l.hasChars() {
		if !l.isCurrIdentifier() && !l.isCurrDigit() {
			l.unread()
			break
		}

		identifierBuf = append(identifierBuf, l.read())
		l.advance()
	}
	identifier := string(identifierBuf)

	switch identifier {
	case "int":
		return Token{
			Kind:  TYPE_INT,
			Value: identifier,
		}
	case "bool":
		return Token{
			Kind:  TYPE_BOOL,
			Value: identifier,
		}
	case "void":
		return Token{
			Kind:  TYPE_VOID,
			Value: identifier,
		}
	case "if":
		return Token{
			Kind:  IF,
			Value: identifier,
		}
	case "else":
		return Token{
			Kind:  ELSE,
			Value: identifier,
		}
	case "while":
		return Token{
			Kind:  WHILE,
			Value: identifier,
		}
	case "return":
		return Token{
			Kind:  RETURN,
			Value: identifier,
		}
	case "print":
		return Token{
			Kind:  PRINT,
			Value: identifier,
		}
	case "true":
		return Token{
			Kind:  BOOL,
			Value: identifier,
		}
	case "false":
		return Token{
			Kind:  BOOL,
			Value: identifier,
		}
	}

	return Token{
		Kind:  IDENT,
		Value: identifier,
	}
}

func (l *Lexer) processNumber() Token {
	numberBuf := make([]byte, 0)
	numberBuf = append(numberBuf, l.read())
	l.advance()

	for l.hasChars() {
		if !l.isCurrDigit() {
			l.unread()
			break
		}

		numberBuf = append(numberBuf, l.read())
		l.advance()
	}

	return Token{
		Kind:  INT,
		Value: string(numberBuf),
	}
}

func (l *Lexer) processSlash() Token {
	l.advance()
	if !l.hasChars() {
		return Token{
			Kind:  SLASH,
			Value: "/",
		}
	}

	if l.read() == '/' {
		return l.processOneLineComment()
	}

	if l.read() == '*' {
		return l.processMultiLineComment()
	}

	l.unread()
	return Token{
		Kind:  SLASH,
		Value: "/",
	}
}

func (l *Lexer) processOneLineComment() Token {
	content := make([]byte, 0)

	l.advance()
	for l.hasChars() {
		if l.read() == '\n' {
			l.unread()
			break
		}

		content = append(content, l.read())
		l.advance()
	}

	return Token{
		Kind:  ONELINE_COMMENT,
		Value: string(content),
	}
}

func (l *Lexer) processMultiLineComment() Token {
	content := make([]byte, 0)

	l.advance()
	var terminated bool
	for l.hasChars() {
		if l.read() == '*' && l.hasNext() && l.next() == '/' {
			l.advance()
			terminated = true
			break
		}

		content = append(content, l.read())
		l.advance()
	}

	if !terminated {
		l.eh.AddError(newUnterminatedCommentError(l.fileName, l.line, l.col))
		l.eh.FailNow()
	}

	return Token{
		Kind:  MULTILINE_COMMENT,
		Value: string(content),
	}
}

func (l *Lexer) processEquals() Token {
	l.advance()
	if !l.hasChars() {
		return Token{
			Kind:  ASSIGN,
			Value: "=",
		}
	}

	if l.read() == '=' {
		return Token{
			Kind:  EQ,
			Value: "==",
		}
	}

	l.unread()
	return Token{
		Kind:  ASSIGN,
		Value: "=",
	}
}

func (l *Lexer) processGreaterThan() Token {
	l.advance()
	if !l.hasChars() {
		return Token{
			Kind:  GT,
			Value: ">",
		}
	}

	if l.read() == '=' {
		return Token{
			Kind:  GEQ,
			Value: ">=",
		}
	}

	l.unread()
	return Token{
		Kind:  GT,
		Value: ">",
	}
}

func (l *Lexer) processLessThan() Token {
	l.advance()
	if !l.hasChars() {
		return Token{
			Kind:  LT,
			Value: "<",
		}
	}

	if l.read() == '=' {
		return Token{
			Kind:  LEQ,
			Value: "<=",
		}
	}

	l.unread()
	return Token{
		Kind:  LT,
		Value: "<",
	}
}

func (l *Lexer) processExclamationMark() Token {
	l.advance()
	if l.hasChars() && l.read() == '=' {
		return Token{
			Kind:  NEQ,
			Value: "!=",
		}
	}

	l.unread()
	l.eh.AddError(newUnexpectedError('!', l.fileName, l.line, l.col))
	l.eh.FailNow()
	panic("unreachable")
}

func (l *Lexer) processPunctuation() Token {
	switch l.read() {
	case '+':
		return Token{
			Kind:  PLUS,
			Value: "+",
		}
	case '-':
		return Token{
			Kind:  MINUS,
			Value: "-",
		}
	case '*':
		return Token{
			Kind:  ASTERISK,
			Value: "*",
		}
	case '/':
		return l.processSlash()
	case '%':
		return Token{
			Kind:  PERCENT,
			Value: "%",
		}
	case '=':
		return l.processEquals()
	case '>':
		return l.processGreaterThan()
	case '<':
		return l.processLessThan()
	case '!':
		return l.processExclamationMark()
	case '(':
		return Token{
			Kind:  LPAREN,
			Value: "(",
		}
	case ')':
		return Token{
			Kind:  RPAREN,
			Value: ")",
		}
	case '{':
		return Token{
			Kind:  LBRACE,
			Value: "{",
		}
	case '}':
		return Token{
			Kind:  RBRACE,
			Value: "}",
		}
	case ';':
		return Token{
			Kind:  SEMICOLON,
			Value: ";",
		}
	case ',':
		return Token{
			Kind:  COMMA,
			Value: ",",
		}
	}

	panic("unreachable")
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) hasNext() bool {
	return l.pos+1 < len(l.buf)
}

func (l *Lexer) advance() {
	if l.hasChars() && l.read() == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) next() byte { return l.buf[l.pos+1] }
func (l *Lexer) read() byte { return l.buf[l.pos] }

func (l *Lexer) unread() {
	l.pos--
	l.col--
}
