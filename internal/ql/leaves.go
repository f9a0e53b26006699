package ql

import (
	"errors"
	"fmt"
)

// ErrShape is matched by every *ShapeError.
var ErrShape = errors.New("unexpected node shape")

// ShapeError reports a node that does not fit where it was found.
type ShapeError struct {
	Op      Op
	Context string // what the caller was walking, e.g. "column list"
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s node in %s", e.Op, e.Context)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// Leaves flattens a comma chain into its leaf literals, left to right. The
// chain may nest in either direction. Any node other than OpComma or a leaf
// fails with a *ShapeError naming context.
func Leaves(n *Node, context string) ([]Literal, error) {
	var out []Literal
	if err := collectLeaves(n, context, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectLeaves(n *Node, context string, out *[]Literal) error {
	if n == nil {
		return &ShapeError{Op: OpNone, Context: context}
	}
	switch {
	case n.IsLeaf():
		*out = append(*out, *n.Lit)
		return nil
	case n.Op == OpComma && len(n.Children) == 2:
		if err := collectLeaves(n.Children[0], context, out); err != nil {
			return err
		}
		return collectLeaves(n.Children[1], context, out)
	default:
		return &ShapeError{Op: n.Op, Context: context}
	}
}

// Chain folds items into a right-nested comma chain: a, b, c becomes
// (comma a (comma b c)). A single item is returned as is.
func Chain(items ...*Node) *Node {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	return NewNode(OpComma, items[0], Chain(items[1:]...))
}
