package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT
	BOOL

	IDENT

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %

	ASSIGN // =

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	LPAREN // (
	LBRACE // {

	RPAREN // )
	RBRACE // }

	SEMICOLON // ;
	COMMA     // ,

	ONELINE_COMMENT
	MULTILINE_COMMENT

	TYPE_INT
	TYPE_BOOL
	TYPE_VOID
	IF
	ELSE
	WHILE
	RETURN
	PRINT
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case BOOL:
		return "BOOL"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case ASSIGN:
		return "ASSIGN"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case LPAREN:
		return "LPAREN"
	case LBRACE:
		return "LBRACE"
	case RPAREN:
		return "RPAREN"
	case RBRACE:
		return "RBRACE"
	case SEMICOLON:
		return "SEMICOLON"
	case COMMA:
		return "COMMA"
	case ONELINE_COMMENT:
		return "ONELINE_COMMENT"
	case MULTILINE_COMMENT:
		return "MULTILINE_COMMENT"
	case TYPE_INT:
		return "TYPE_INT"
	case TYPE_BOOL:
		return "TYPE_BOOL"
	case TYPE_VOID:
		return "TYPE_VOID"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case WHILE:
		return "WHILE"
	case RETURN:
		return "RETURN"
	case PRINT:
		return "PRINT"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

type TokenMetadata struct {
	FileName string
	Line     int
	Column   int
	Length   int
}

type Token struct {
	Kind     TokenKind
	Value    string
	Metadata TokenMetadata
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case INT, BOOL, IDENT:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}
