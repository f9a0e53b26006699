package parser

import (
	"errors"

	"github.com/samber/mo"

	"github.com/atlekbai/sqlplan/internal/ql"
)

// tokens is the lazily filled token buffer shared by every state of one
// parse. Tokens are pulled from the lexer only when a rule looks at them.
type tokens struct {
	lexer *ql.Lexer
	buf   []ql.Token
	err   error // lex error at index len(buf), sticky
}

func (t *tokens) at(i int) (ql.Token, error) {
	for len(t.buf) <= i {
		if t.err != nil {
			return ql.Token{}, t.err
		}
		if n := len(t.buf); n > 0 && t.buf[n-1].Kind == ql.TokEOF {
			return t.buf[n-1], nil
		}
		tok, err := t.lexer.Next()
		if err != nil {
			t.err = err
			return ql.Token{}, err
		}
		t.buf = append(t.buf, tok)
	}
	return t.buf[i], nil
}

// state is an immutable cursor into the token buffer.
type state struct {
	toks *tokens
	idx  int
}

func newState(input string) state {
	return state{toks: &tokens{lexer: ql.NewLexer(input)}}
}

func (s state) peek() (ql.Token, error) {
	return s.toks.at(s.idx)
}

func (s state) advance() state {
	return state{toks: s.toks, idx: s.idx + 1}
}

// failure is a recoverable grammar mismatch. Alternatives of a Choice are
// retried on failure unless cut is set. The *ql.ParseError is only built
// when a failure is reported.
type failure struct {
	idx      int // token index where matching stopped
	cut      bool
	toks     *tokens
	found    ql.Token
	expected []string
}

func (f *failure) parseError() *ql.ParseError {
	return &ql.ParseError{
		Pos:       f.found.Pos,
		Expected:  f.expected,
		Found:     f.found,
		Remaining: f.toks.lexer.RemainingAt(f.found.Pos),
	}
}

func (f *failure) Error() string { return f.parseError().Error() }
func (f *failure) Unwrap() error { return f.parseError() }

func (s state) fail(expected ...string) error {
	tok, err := s.peek()
	if err != nil {
		return err
	}
	return &failure{idx: s.idx, toks: s.toks, found: tok, expected: expected}
}

// asFailure reports whether err is a retryable grammar mismatch. Lex errors
// and committed failures are not.
func asFailure(err error) (*failure, bool) {
	var f *failure
	if !errors.As(err, &f) || f.cut {
		return nil, false
	}
	return f, true
}

// furthest keeps the failure that got deeper into the input, merging the
// expectations of failures that stopped at the same token.
func furthest(a, b *failure) *failure {
	switch {
	case a == nil:
		return b
	case b.idx > a.idx:
		return b
	case b.idx < a.idx:
		return a
	}
	merged := *a
	merged.expected = appendUnique(append([]string(nil), a.expected...), b.expected...)
	return &merged
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		dup := false
		for _, d := range dst {
			if d == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}

// Rule parses a value of type T starting at a state. On success it returns
// the state after the consumed tokens.
type Rule[T any] func(s state) (state, T, error)

// Token matches one token of the given kind.
func Token(kind ql.TokenKind) Rule[ql.Token] {
	return func(s state) (state, ql.Token, error) {
		tok, err := s.peek()
		if err != nil {
			return s, ql.Token{}, err
		}
		if tok.Kind != kind {
			return s, ql.Token{}, s.fail(kind.String())
		}
		return s.advance(), tok, nil
	}
}

// Skip matches the given token kinds in order and discards them.
func Skip(kinds ...ql.TokenKind) Rule[struct{}] {
	return func(s state) (state, struct{}, error) {
		for _, k := range kinds {
			var err error
			s, _, err = Token(k)(s)
			if err != nil {
				return s, struct{}{}, err
			}
		}
		return s, struct{}{}, nil
	}
}

// Choice tries each alternative from the same state, in order, and returns
// the first success. If all fail, the failure that reached furthest wins.
// Committed failures and lex errors stop the search immediately.
func Choice[T any](alts ...Rule[T]) Rule[T] {
	return func(s state) (state, T, error) {
		var (
			zero T
			best *failure
		)
		for _, alt := range alts {
			next, v, err := alt(s)
			if err == nil {
				return next, v, nil
			}
			f, ok := asFailure(err)
			if !ok {
				return s, zero, err
			}
			best = furthest(best, f)
		}
		if best == nil {
			return s, zero, s.fail()
		}
		return s, zero, best
	}
}

// Cut commits to r: a failure inside r is not retried by an enclosing Choice.
func Cut[T any](r Rule[T]) Rule[T] {
	return func(s state) (state, T, error) {
		next, v, err := r(s)
		if f, ok := asFailure(err); ok {
			committed := *f
			committed.cut = true
			return next, v, &committed
		}
		return next, v, err
	}
}

// Opt makes r optional. A retryable failure yields mo.None and consumes
// nothing.
func Opt[T any](r Rule[T]) Rule[mo.Option[T]] {
	return func(s state) (state, mo.Option[T], error) {
		next, v, err := r(s)
		if err == nil {
			return next, mo.Some(v), nil
		}
		if _, ok := asFailure(err); ok {
			return s, mo.None[T](), nil
		}
		return s, mo.None[T](), err
	}
}

// Map transforms the value produced by r.
func Map[A, B any](r Rule[A], f func(A) B) Rule[B] {
	return func(s state) (state, B, error) {
		next, v, err := r(s)
		if err != nil {
			var zero B
			return s, zero, err
		}
		return next, f(v), nil
	}
}

// SepBy1 matches one or more items separated by sep and folds them into a
// right-nested comma chain. Once a separator matches, an item must follow.
func SepBy1(item Rule[*ql.Node], sep Rule[struct{}]) Rule[*ql.Node] {
	return func(s state) (state, *ql.Node, error) {
		s, first, err := item(s)
		if err != nil {
			return s, nil, err
		}
		items := []*ql.Node{first}
		for {
			next, _, err := sep(s)
			if err != nil {
				if _, ok := asFailure(err); ok {
					break
				}
				return s, nil, err
			}
			next, it, err := item(next)
			if err != nil {
				return s, nil, err
			}
			items = append(items, it)
			s = next
		}
		return s, ql.Chain(items...), nil
	}
}
