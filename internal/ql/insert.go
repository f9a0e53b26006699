package ql

import "fmt"

// Insert is the typed view of an OpInsert node.
type Insert struct {
	Table   string
	Columns []string
	Values  []Literal
}

// NewInsert extracts an Insert from n, which must be an OpInsert node as
// produced by the parser.
func NewInsert(n *Node) (*Insert, error) {
	if n == nil || n.Op != OpInsert {
		op := OpNone
		if n != nil {
			op = n.Op
		}
		return nil, &ShapeError{Op: op, Context: "insert statement"}
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("insert statement: %w", err)
	}

	table := n.Children[0]
	if !table.IsLeaf() || table.Lit.Kind != LitIdent {
		return nil, &ShapeError{Op: table.Op, Context: "insert table name"}
	}

	cols, err := Leaves(n.Children[1], "insert column list")
	if err != nil {
		return nil, err
	}
	values := n.Children[2]
	if values.Op != OpValues {
		return nil, &ShapeError{Op: values.Op, Context: "insert values"}
	}
	vals, err := Leaves(values.Children[0], "insert value list")
	if err != nil {
		return nil, err
	}
	if len(cols) != len(vals) {
		return nil, fmt.Errorf("insert into %s: %d columns but %d values", table.Lit.Text, len(cols), len(vals))
	}

	ins := &Insert{Table: table.Lit.Text, Values: vals}
	for _, c := range cols {
		ins.Columns = append(ins.Columns, c.Text)
	}
	return ins, nil
}
