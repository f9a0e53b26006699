package parser

import (
	"errors"
	"fmt"

	"github.com/atlekbai/sqlplan/internal/ql"
)

// Parse parses exactly one statement. The trailing ";" is optional.
func Parse(input string) (*ql.Node, error) {
	s := newState(input)
	s, _, err := Opt(Token(ql.TokSpace))(s)
	if err != nil {
		return nil, report(err)
	}
	s, node, err := statement(s)
	if err != nil {
		return nil, report(err)
	}
	s, more, err := terminator(s)
	if err != nil {
		return nil, report(err)
	}
	if more {
		if _, _, err := endOfInput(s); err != nil {
			return nil, report(err)
		}
	}
	return node, nil
}

// ParseScript parses one or more statements separated by ";". Whitespace is
// allowed around statements; the final ";" is optional.
func ParseScript(input string) ([]*ql.Node, error) {
	s := newState(input)
	var stmts []*ql.Node
	for {
		var err error
		s, _, err = Opt(Token(ql.TokSpace))(s)
		if err != nil {
			return nil, report(err)
		}
		if len(stmts) > 0 {
			// after a ";": either the input ends or another statement follows
			if _, _, err := Skip(ql.TokEOF)(s); err == nil {
				return stmts, nil
			}
		}

		var node *ql.Node
		s, node, err = statement(s)
		if err != nil {
			return nil, report(err)
		}
		stmts = append(stmts, node)

		var more bool
		s, more, err = terminator(s)
		if err != nil {
			return nil, report(err)
		}
		if !more {
			return stmts, nil
		}
	}
}

// ParseInsert parses a single insert statement into its typed form.
func ParseInsert(input string) (*ql.Insert, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	ins, err := ql.NewInsert(node)
	if errors.Is(err, ql.ErrShape) {
		return nil, fmt.Errorf("not an insert statement: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return ins, nil
}

// report strips internal bookkeeping so callers see *ql.ParseError or
// *ql.LexError.
func report(err error) error {
	var f *failure
	if errors.As(err, &f) {
		return f.parseError()
	}
	return err
}
