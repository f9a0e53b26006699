package ql

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes a query string on demand.
//
// Whitespace is not skipped: each run of blanks becomes a TokSpace token and
// the grammar decides where one is allowed.
type Lexer struct {
	input  []rune
	pos    int
	peeked *Token
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.next()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token. Once the input is exhausted every
// call returns TokEOF.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.next()
}

// Remaining returns the input not yet consumed by Next.
func (l *Lexer) Remaining() string {
	pos := l.pos
	if l.peeked != nil {
		pos = l.peeked.Pos
	}
	return l.RemainingAt(pos)
}

// RemainingAt returns the input starting at rune offset pos.
func (l *Lexer) RemainingAt(pos int) string {
	if pos >= len(l.input) {
		return ""
	}
	return string(l.input[pos:])
}

func (l *Lexer) next() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]
	pos := l.pos

	switch ch {
	case ',':
		l.pos++
		return Token{Kind: TokComma, Lit: ",", Pos: pos}, nil
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Lit: "(", Pos: pos}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Lit: ")", Pos: pos}, nil
	case ';':
		l.pos++
		return Token{Kind: TokSemi, Lit: ";", Pos: pos}, nil
	case '\'':
		return l.readString(pos)
	case '-':
		if l.pos+1 < len(l.input) && unicode.IsDigit(l.input[l.pos+1]) {
			l.pos++ // consume sign, digits follow
			return l.readWord(pos)
		}
		return Token{}, l.errorf(pos, "unexpected '-', expected a digit after the sign")
	default:
		if unicode.IsSpace(ch) {
			return l.readSpace(pos), nil
		}
		if isWordChar(ch) {
			return l.readWord(pos)
		}
		return Token{}, l.errorf(pos, "unexpected character %q", ch)
	}
}

func (l *Lexer) readSpace(pos int) Token {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokSpace, Lit: string(l.input[pos:l.pos]), Pos: pos}
}

// readString reads a single-quoted literal. A doubled quote stands for one
// quote character.
func (l *Lexer) readString(pos int) (Token, error) {
	l.pos++ // skip opening '
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\'' {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\'' {
				sb.WriteRune('\'')
				l.pos += 2
				continue
			}
			l.pos++ // skip closing '
			return Token{Kind: TokString, Lit: sb.String(), Pos: pos}, nil
		}
		sb.WriteRune(ch)
		l.pos++
	}
	l.pos = pos
	return Token{}, l.errorf(pos, "unterminated string literal")
}

// readWord reads an identifier, keyword or integer. pos may point at a sign
// already consumed by the caller.
func (l *Lexer) readWord(pos int) (Token, error) {
	start := l.pos
	digits := true
	for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
		if !unicode.IsDigit(l.input[l.pos]) {
			digits = false
		}
		l.pos++
	}
	lit := string(l.input[pos:l.pos])
	if digits {
		return Token{Kind: TokInteger, Lit: lit, Pos: pos}, nil
	}
	if start != pos {
		l.pos = pos
		return Token{}, l.errorf(pos, "malformed number %q", lit)
	}
	kind := TokIdent
	if kw, ok := keywords[lit]; ok {
		kind = kw
	}
	return Token{Kind: kind, Lit: lit, Pos: pos}, nil
}

func (l *Lexer) errorf(pos int, format string, args ...any) error {
	return &LexError{Pos: pos, Remaining: l.RemainingAt(pos), Msg: fmt.Sprintf(format, args...)}
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
