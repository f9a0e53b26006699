package ql

import "fmt"

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokEOF     TokenKind = iota
	TokSpace             // run of whitespace
	TokComma             // ,
	TokLParen            // (
	TokRParen            // )
	TokSemi              // ;
	TokIdent             // identifier
	TokInteger           // 42, -7
	TokString            // 'string literal'
	TokSelect            // select
	TokFrom              // from
	TokInsert            // insert
	TokInto              // into
	TokValues            // values
)

// Token is a single lexical token produced by the lexer.
type Token struct {
	Kind TokenKind
	Lit  string // raw text of the token, unquoted for strings
	Pos  int    // rune offset in input
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdent, TokInteger, TokString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Lit)
	}
	return t.Kind.String()
}

var kindNames = map[TokenKind]string{
	TokEOF:     "EOF",
	TokSpace:   "whitespace",
	TokComma:   ",",
	TokLParen:  "(",
	TokRParen:  ")",
	TokSemi:    ";",
	TokIdent:   "identifier",
	TokInteger: "integer",
	TokString:  "string",
	TokSelect:  "select",
	TokFrom:    "from",
	TokInsert:  "insert",
	TokInto:    "into",
	TokValues:  "values",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokSelect && k <= TokValues
}

// Keywords match exactly; "SELECT" and "select" are keywords, "Select" is not.
var keywords = map[string]TokenKind{
	"select": TokSelect,
	"SELECT": TokSelect,
	"from":   TokFrom,
	"FROM":   TokFrom,
	"insert": TokInsert,
	"INSERT": TokInsert,
	"into":   TokInto,
	"INTO":   TokInto,
	"values": TokValues,
	"VALUES": TokValues,
}
