package query

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/atlekbai/sqlplan/internal/plan"
	"github.com/atlekbai/sqlplan/internal/ql"
)

// ErrUnrenderable is returned for plans whose shape has no SQL rendering yet.
var ErrUnrenderable = errors.New("plan cannot be rendered to SQL")

// Renderer generates SQL text for logical plans and inserts.
type Renderer struct {
	format sq.PlaceholderFormat
}

// NewRenderer returns a renderer that emits placeholders in the given format.
func NewRenderer(format sq.PlaceholderFormat) *Renderer {
	if format == nil {
		format = sq.Question
	}
	return &Renderer{format: format}
}

// Placeholder maps a placeholder style name to its squirrel format.
func Placeholder(name string) (sq.PlaceholderFormat, error) {
	switch name {
	case "dollar":
		return sq.Dollar, nil
	case "question":
		return sq.Question, nil
	default:
		return nil, fmt.Errorf("unknown placeholder format %q", name)
	}
}

// QI quotes a SQL identifier.
func QI(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// RenderPlan renders a projection over table reads as a SELECT statement,
// taking every projected column as an identifier. Several reads become a
// comma-separated FROM list.
func (r *Renderer) RenderPlan(p *plan.LogicalPlan) (string, []any, error) {
	return r.RenderSelect(p, nil)
}

// RenderSelect is RenderPlan with the select items the projection was
// lowered from. Integer and string items are bound as arguments instead of
// being quoted as column names. A nil items slice means all identifiers.
func (r *Renderer) RenderSelect(p *plan.LogicalPlan, items []ql.Literal) (string, []any, error) {
	if p == nil {
		return "", nil, fmt.Errorf("%w: nil plan", ErrUnrenderable)
	}
	proj, ok := p.Root.Operator.(plan.Projection)
	if !ok {
		return "", nil, fmt.Errorf("%w: root operator %v", ErrUnrenderable, p.Root.Operator)
	}
	if len(proj.Columns) == 0 {
		return "", nil, fmt.Errorf("%w: empty projection", ErrUnrenderable)
	}
	if items == nil {
		items = lo.Map(proj.Columns, func(c plan.Column, _ int) ql.Literal {
			return ql.Literal{Kind: ql.LitIdent, Text: c.Name}
		})
	}
	if len(items) != len(proj.Columns) {
		return "", nil, fmt.Errorf("%w: %d select items for %d columns", ErrUnrenderable, len(items), len(proj.Columns))
	}

	from := make([]string, 0, len(p.Root.Children))
	for _, c := range p.Root.Children {
		rd, ok := c.Operator.(plan.Read)
		if !ok {
			return "", nil, fmt.Errorf("%w: projection input %v", ErrUnrenderable, c.Operator)
		}
		from = append(from, QI(rd.Table.Name))
	}
	if len(from) == 0 {
		return "", nil, fmt.Errorf("%w: projection without input", ErrUnrenderable)
	}

	qb := sq.Select().
		From(strings.Join(from, ", ")).
		PlaceholderFormat(r.format)
	for i, it := range items {
		if it.Text != proj.Columns[i].Name {
			return "", nil, fmt.Errorf("%w: select item %s does not match column %q", ErrUnrenderable, it, proj.Columns[i].Name)
		}
		if it.Kind == ql.LitIdent {
			qb = qb.Column(QI(it.Text))
			continue
		}
		val, err := bindValue(it)
		if err != nil {
			return "", nil, fmt.Errorf("select item %s: %w", it, err)
		}
		qb = qb.Column(sq.Expr("?", val))
	}

	return qb.ToSql()
}

// RenderInsert renders an INSERT statement. Values are bound as arguments:
// integers as int64, everything else as its text.
func (r *Renderer) RenderInsert(ins *ql.Insert) (string, []any, error) {
	if ins == nil {
		return "", nil, fmt.Errorf("%w: nil insert", ErrUnrenderable)
	}
	values := make([]any, 0, len(ins.Values))
	for _, v := range ins.Values {
		val, err := bindValue(v)
		if err != nil {
			return "", nil, fmt.Errorf("insert into %s: %w", ins.Table, err)
		}
		values = append(values, val)
	}

	qb := sq.Insert(QI(ins.Table)).
		Columns(lo.Map(ins.Columns, func(c string, _ int) string { return QI(c) })...).
		Values(values...).
		PlaceholderFormat(r.format)

	return qb.ToSql()
}

func bindValue(l ql.Literal) (any, error) {
	if l.Kind == ql.LitInteger {
		return l.Int()
	}
	return l.Text, nil
}
