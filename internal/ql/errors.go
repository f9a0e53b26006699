package ql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLex is matched by every *LexError.
	ErrLex = errors.New("lex error")
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
)

// maxRemaining caps how much unconsumed input is echoed back in messages.
const maxRemaining = 32

// LexError reports that no token rule matches at Pos.
type LexError struct {
	Pos       int
	Remaining string
	Msg       string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at position %d: %s (near %q)", e.Pos, e.Msg, clip(e.Remaining))
}

func (e *LexError) Is(target error) bool { return target == ErrLex }

// ParseError reports that no grammar alternative matches at Pos.
type ParseError struct {
	Pos       int
	Expected  []string // human-readable descriptions of what would have matched
	Found     Token
	Remaining string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s, got %s (near %q)",
		e.Pos, expectedList(e.Expected), e.Found, clip(e.Remaining))
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func expectedList(exp []string) string {
	switch len(exp) {
	case 0:
		return "nothing"
	case 1:
		return exp[0]
	}
	return "one of " + strings.Join(exp, ", ")
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxRemaining {
		return s
	}
	return string(r[:maxRemaining]) + "..."
}
