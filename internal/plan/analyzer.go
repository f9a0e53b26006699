package plan

import (
	"go.uber.org/zap"

	"github.com/atlekbai/sqlplan/internal/ql"
)

// Analyzer lowers an AST into a logical plan. It keeps no per-call state, so
// one Analyzer may be shared between goroutines.
type Analyzer struct {
	logger *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug traces of each lowering step.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze lowers a statement AST into a logical plan. Only select statements
// have a lowering; any other root fails with an *AnalysisError. The input is
// not modified.
func (a *Analyzer) Analyze(node *ql.Node) (*LogicalPlan, error) {
	if node == nil || node.Op != ql.OpSelect {
		return nil, unsupported(node, "statement root")
	}
	nodes, err := a.walk(node)
	if err != nil {
		return nil, err
	}
	return &LogicalPlan{Root: nodes[0]}, nil
}

// walk lowers one AST node. A From clause lowers to one node per table, so
// the result is a slice.
func (a *Analyzer) walk(node *ql.Node) ([]LogicalNode, error) {
	switch node.Op {
	case ql.OpSelect:
		return a.walkSelect(node)
	case ql.OpFrom:
		return a.walkFrom(node)
	default:
		return nil, unsupported(node, "query source")
	}
}

// walkSelect: the column list is the first child, the source the last.
func (a *Analyzer) walkSelect(node *ql.Node) ([]LogicalNode, error) {
	if len(node.Children) < 2 {
		return nil, unsupported(node, "select with missing clauses")
	}
	columns, err := FlattenColumns(node.Children[0])
	if err != nil {
		return nil, err
	}
	source := node.Children[len(node.Children)-1]
	if source == nil || source.Op != ql.OpFrom {
		return nil, unsupported(source, "select source")
	}
	children, err := a.walk(source)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("lowered select",
		zap.Int("columns", len(columns)),
		zap.Int("sources", len(children)),
	)
	return []LogicalNode{{
		Operator: Projection{Columns: columns},
		Children: children,
	}}, nil
}

func (a *Analyzer) walkFrom(node *ql.Node) ([]LogicalNode, error) {
	if len(node.Children) != 1 {
		return nil, unsupported(node, "from clause")
	}
	tables, err := FlattenTables(node.Children[0])
	if err != nil {
		return nil, err
	}

	nodes := make([]LogicalNode, 0, len(tables))
	for _, t := range tables {
		nodes = append(nodes, LogicalNode{Operator: Read{Table: t}})
	}
	a.logger.Debug("lowered from", zap.Int("tables", len(tables)))
	return nodes, nil
}
