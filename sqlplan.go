// Package sqlplan parses a small SQL subset and lowers it into logical
// query plans.
//
// The pipeline is lexer → parser → analyzer:
//
//	node, err := sqlplan.Parse("select a, b from t;")
//	p, err := sqlplan.Analyze(node)
//	fmt.Println(p) // projection(a, b)
//	               // └─ read(t)
//
// Compile runs the whole pipeline over a ";"-separated script and renders
// every statement to SQL text.
package sqlplan

import (
	"context"

	"github.com/atlekbai/sqlplan/internal/config"
	"github.com/atlekbai/sqlplan/internal/plan"
	"github.com/atlekbai/sqlplan/internal/ql"
	"github.com/atlekbai/sqlplan/internal/ql/parser"
	"github.com/atlekbai/sqlplan/internal/service"
)

type (
	Node        = ql.Node
	Insert      = ql.Insert
	LogicalPlan = plan.LogicalPlan
	Statement   = service.Statement
	Config      = config.Config
)

var (
	ErrLex         = ql.ErrLex
	ErrParse       = ql.ErrParse
	ErrUnsupported = plan.ErrUnsupported
)

// Parse parses a single statement.
func Parse(input string) (*Node, error) {
	return parser.Parse(input)
}

// ParseInsert parses a single insert statement into its typed form.
func ParseInsert(input string) (*Insert, error) {
	return parser.ParseInsert(input)
}

// Analyze lowers a select statement into a logical plan.
func Analyze(node *Node) (*LogicalPlan, error) {
	return plan.NewAnalyzer().Analyze(node)
}

// DefaultConfig returns the configuration Compile uses.
func DefaultConfig() *Config {
	return config.Default()
}

// Compile compiles every statement of a script with the default
// configuration.
func Compile(ctx context.Context, script string) ([]Statement, error) {
	return CompileWith(ctx, nil, script)
}

// CompileWith is Compile with an explicit configuration. A nil cfg means
// DefaultConfig.
func CompileWith(ctx context.Context, cfg *Config, script string) ([]Statement, error) {
	p, err := service.NewPlanner(cfg, nil)
	if err != nil {
		return nil, err
	}
	return p.Compile(ctx, script)
}
