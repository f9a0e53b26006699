package ql

import (
	"fmt"
	"strconv"
	"strings"
)

// Op tags an interior AST node.
type Op int

const (
	OpNone   Op = iota // leaf
	OpSelect           // children: column list, source
	OpFrom             // children: table list
	OpComma            // children: left item, right item
	OpInsert           // children: table leaf, column list, values
	OpValues           // children: value list
	OpCall             // children: function name leaf, argument list

	// Declared for WHERE/JOIN/GROUP BY/ORDER BY/HAVING/LIMIT and aliasing.
	// The parser never produces them and the analyzer rejects them.
	OpWhere
	OpJoin
	OpGroupBy
	OpOrderBy
	OpHaving
	OpLimit
	OpAlias
	OpQualified
)

var opNames = map[Op]string{
	OpNone:      "leaf",
	OpSelect:    "select",
	OpFrom:      "from",
	OpComma:     "comma",
	OpInsert:    "insert",
	OpValues:    "values",
	OpCall:      "call",
	OpWhere:     "where",
	OpJoin:      "join",
	OpGroupBy:   "group_by",
	OpOrderBy:   "order_by",
	OpHaving:    "having",
	OpLimit:     "limit",
	OpAlias:     "alias",
	OpQualified: "qualified",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// arity is the number of children each produced operator carries.
var arity = map[Op]int{
	OpSelect: 2,
	OpFrom:   1,
	OpComma:  2,
	OpInsert: 3,
	OpValues: 1,
	OpCall:   2,
}

// LiteralKind classifies a terminal value.
type LiteralKind int

const (
	LitIdent LiteralKind = iota
	LitInteger
	LitString
)

func (k LiteralKind) String() string {
	switch k {
	case LitIdent:
		return "ident"
	case LitInteger:
		return "integer"
	case LitString:
		return "string"
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// Literal is a terminal value at an AST leaf.
type Literal struct {
	Kind LiteralKind
	Text string // identifier name, integer digits, or unquoted string
}

// Int returns the value of an integer literal.
func (l Literal) Int() (int64, error) {
	if l.Kind != LitInteger {
		return 0, fmt.Errorf("literal %q is a %s, not an integer", l.Text, l.Kind)
	}
	return strconv.ParseInt(l.Text, 10, 64)
}

func (l Literal) String() string {
	switch l.Kind {
	case LitString:
		return "'" + strings.ReplaceAll(l.Text, "'", "''") + "'"
	default:
		return l.Text
	}
}

// Node is an AST node: either an operator with ordered children or a leaf
// carrying a Literal. Nodes are never mutated after the parser returns them.
type Node struct {
	Op       Op
	Children []*Node
	Lit      *Literal
}

// NewNode returns an interior node.
func NewNode(op Op, children ...*Node) *Node {
	return &Node{Op: op, Children: children}
}

// NewLeaf returns a leaf node.
func NewLeaf(kind LiteralKind, text string) *Node {
	return &Node{Lit: &Literal{Kind: kind, Text: text}}
}

// IsLeaf reports whether n carries a literal instead of an operator.
func (n *Node) IsLeaf() bool {
	return n.Op == OpNone && n.Lit != nil
}

// Validate checks the leaf-or-operator invariant and operator arity over the
// whole subtree.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	switch {
	case n.Op == OpNone && n.Lit == nil:
		return fmt.Errorf("node has neither operator nor literal")
	case n.Op != OpNone && n.Lit != nil:
		return fmt.Errorf("%s node also carries literal %s", n.Op, n.Lit)
	case n.Op == OpNone && len(n.Children) > 0:
		return fmt.Errorf("leaf %s has children", n.Lit)
	}
	if want, ok := arity[n.Op]; ok && len(n.Children) != want {
		return fmt.Errorf("%s node has %d children, want %d", n.Op, len(n.Children), want)
	}
	for _, c := range n.Children {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// String renders n as an S-expression, e.g. (select (comma a b) (from t)).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if n.Lit != nil {
		sb.WriteString(n.Lit.String())
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Op.String())
	for _, c := range n.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}
