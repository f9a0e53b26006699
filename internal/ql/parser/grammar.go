package parser

import (
	"github.com/atlekbai/sqlplan/internal/ql"
)

// Grammar, ordered choice, first success wins:
//
//	statement  := select | insert
//	select     := "select" SPACE columnList SPACE "from" SPACE tableList
//	insert     := "insert" SPACE "into" SPACE ident SPACE "(" nameList ")"
//	              SPACE "values" SPACE "(" valueList ")"
//	columnList := selectItem { ", " selectItem }
//	selectItem := call | ident | integer | string
//	call       := ident "(" columnList ")"
//	tableList  := ident { ", " ident }
//	nameList   := ident { ", " ident }
//	valueList  := value { ", " value }
//	value      := integer | bareWord | string
//
// Lists come back as right-nested OpComma chains.

var listSep = Skip(ql.TokComma, ql.TokSpace)

func leaf(kind ql.LiteralKind) func(ql.Token) *ql.Node {
	return func(t ql.Token) *ql.Node { return ql.NewLeaf(kind, t.Lit) }
}

var (
	identLeaf   = Map(Token(ql.TokIdent), leaf(ql.LitIdent))
	integerLeaf = Map(Token(ql.TokInteger), leaf(ql.LitInteger))
	stringLeaf  = Map(Token(ql.TokString), leaf(ql.LitString))

	// An unquoted word in value position is a string, same as its quoted form.
	bareWordLeaf = Map(Token(ql.TokIdent), leaf(ql.LitString))
)

func statement(s state) (state, *ql.Node, error) {
	return Choice[*ql.Node](selectStmt, insertStmt)(s)
}

func selectStmt(s state) (state, *ql.Node, error) {
	s, _, err := Token(ql.TokSelect)(s)
	if err != nil {
		return s, nil, err
	}
	return Cut[*ql.Node](selectBody)(s)
}

func selectBody(s state) (state, *ql.Node, error) {
	s, _, err := Token(ql.TokSpace)(s)
	if err != nil {
		return s, nil, err
	}
	s, cols, err := columnList(s)
	if err != nil {
		return s, nil, err
	}
	s, _, err = Skip(ql.TokSpace, ql.TokFrom, ql.TokSpace)(s)
	if err != nil {
		return s, nil, err
	}
	s, tables, err := SepBy1(identLeaf, listSep)(s)
	if err != nil {
		return s, nil, err
	}
	return s, ql.NewNode(ql.OpSelect, cols, ql.NewNode(ql.OpFrom, tables)), nil
}

func columnList(s state) (state, *ql.Node, error) {
	return SepBy1(selectItem, listSep)(s)
}

func selectItem(s state) (state, *ql.Node, error) {
	return Choice[*ql.Node](call, identLeaf, integerLeaf, stringLeaf)(s)
}

// call commits once the opening parenthesis follows the name, so a bare
// identifier is only retried when no "(" is present.
func call(s state) (state, *ql.Node, error) {
	s, name, err := identLeaf(s)
	if err != nil {
		return s, nil, err
	}
	s, _, err = Token(ql.TokLParen)(s)
	if err != nil {
		return s, nil, err
	}
	return Cut[*ql.Node](func(s state) (state, *ql.Node, error) {
		s, args, err := columnList(s)
		if err != nil {
			return s, nil, err
		}
		s, _, err = Token(ql.TokRParen)(s)
		if err != nil {
			return s, nil, err
		}
		return s, ql.NewNode(ql.OpCall, name, args), nil
	})(s)
}

func insertStmt(s state) (state, *ql.Node, error) {
	s, _, err := Token(ql.TokInsert)(s)
	if err != nil {
		return s, nil, err
	}
	return Cut[*ql.Node](insertBody)(s)
}

func insertBody(s state) (state, *ql.Node, error) {
	s, _, err := Skip(ql.TokSpace, ql.TokInto, ql.TokSpace)(s)
	if err != nil {
		return s, nil, err
	}
	s, table, err := identLeaf(s)
	if err != nil {
		return s, nil, err
	}
	s, _, err = Skip(ql.TokSpace, ql.TokLParen)(s)
	if err != nil {
		return s, nil, err
	}
	s, cols, err := SepBy1(identLeaf, listSep)(s)
	if err != nil {
		return s, nil, err
	}
	s, _, err = Skip(ql.TokRParen, ql.TokSpace, ql.TokValues, ql.TokSpace, ql.TokLParen)(s)
	if err != nil {
		return s, nil, err
	}
	s, vals, err := SepBy1(value, listSep)(s)
	if err != nil {
		return s, nil, err
	}
	s, _, err = Token(ql.TokRParen)(s)
	if err != nil {
		return s, nil, err
	}
	return s, ql.NewNode(ql.OpInsert, table, cols, ql.NewNode(ql.OpValues, vals)), nil
}

func value(s state) (state, *ql.Node, error) {
	return Choice[*ql.Node](integerLeaf, bareWordLeaf, stringLeaf)(s)
}

// terminator matches ";" or, with optional trailing whitespace, the end of
// input. more reports whether a ";" was consumed.
func terminator(s state) (state, bool, error) {
	return Choice[bool](
		Map(Token(ql.TokSemi), func(ql.Token) bool { return true }),
		Map[struct{}, bool](endOfInput, func(struct{}) bool { return false }),
	)(s)
}

func endOfInput(s state) (state, struct{}, error) {
	s, _, err := Opt(Token(ql.TokSpace))(s)
	if err != nil {
		return s, struct{}{}, err
	}
	return Skip(ql.TokEOF)(s)
}
