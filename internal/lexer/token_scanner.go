package lexer

type TokenScanner interface {
	Read() *Token
	Unread() *Token
	HasTokens() bool
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	if s.pos >= len(s.tokens) {
		return &s.tokens[len(s.tokens)-1]
	}

	token := &s.tokens[s.pos]
	s.pos++

	return token
}

func (s *SimpleTokenScanner) Unread() *Token {
	if s.pos > 1 {
		s.pos -= 2
	} else {
		s.pos = 0
	}

	return s.Read()
}

func (s *SimpleTokenScanner) HasTokens() bool {
	return s.pos < len(s.tokens)
}
