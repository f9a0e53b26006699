package plan

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/atlekbai/sqlplan/internal/ql"
)

// FlattenColumns turns a column-list comma chain into columns in source
// order. Literal items keep their text as the column name.
func FlattenColumns(n *ql.Node) ([]Column, error) {
	lits, err := flatten(n, "column list")
	if err != nil {
		return nil, err
	}
	return lo.Map(lits, func(l ql.Literal, _ int) Column {
		return Column{Name: l.Text}
	}), nil
}

// FlattenTables turns a table-list comma chain into tables in source order.
func FlattenTables(n *ql.Node) ([]Table, error) {
	lits, err := flatten(n, "table list")
	if err != nil {
		return nil, err
	}
	for _, l := range lits {
		if l.Kind != ql.LitIdent {
			return nil, &AnalysisError{Op: ql.OpNone, Context: fmt.Sprintf("table list (%s literal %s)", l.Kind, l)}
		}
	}
	return lo.Map(lits, func(l ql.Literal, _ int) Table {
		return Table{Name: l.Text}
	}), nil
}

func flatten(n *ql.Node, context string) ([]ql.Literal, error) {
	lits, err := ql.Leaves(n, context)
	if err != nil {
		var se *ql.ShapeError
		if errors.As(err, &se) {
			return nil, &AnalysisError{Op: se.Op, Context: context, Err: err}
		}
		return nil, err
	}
	return lits, nil
}
