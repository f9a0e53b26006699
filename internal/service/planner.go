package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atlekbai/sqlplan/internal/config"
	"github.com/atlekbai/sqlplan/internal/plan"
	"github.com/atlekbai/sqlplan/internal/ql"
	"github.com/atlekbai/sqlplan/internal/ql/parser"
	"github.com/atlekbai/sqlplan/internal/query"
)

// ErrInputTooLarge is returned for scripts longer than Config.MaxInputBytes.
var ErrInputTooLarge = errors.New("input too large")

// Kind names the statement type of a compiled statement.
type Kind string

const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
)

// Statement is one compiled statement of a script.
type Statement struct {
	ID    uuid.UUID
	Index int
	Kind  Kind
	AST   *ql.Node

	// Plan and Explain are set for selects, Insert for inserts.
	Plan    *plan.LogicalPlan
	Explain string
	Insert  *ql.Insert

	SQL  string
	Args []any
}

// StatementError ties a compilation failure to its statement.
type StatementError struct {
	Index int
	ID    uuid.UUID
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d: %v", e.Index, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Planner compiles scripts: parse, analyze, render.
type Planner struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer *plan.Analyzer
	renderer *query.Renderer
}

func NewPlanner(cfg *config.Config, logger *zap.Logger) (*Planner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := query.Placeholder(cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		cfg:      cfg,
		logger:   logger,
		analyzer: plan.NewAnalyzer(plan.WithLogger(logger)),
		renderer: query.NewRenderer(format),
	}, nil
}

// Compile parses a script and compiles its statements in parallel. Results
// are in source order. The first failing statement cancels the rest.
func (p *Planner) Compile(ctx context.Context, script string) ([]Statement, error) {
	if p.cfg.MaxInputBytes > 0 && len(script) > p.cfg.MaxInputBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(script), p.cfg.MaxInputBytes)
	}
	nodes, err := parser.ParseScript(script)
	if err != nil {
		return nil, err
	}

	out := make([]Statement, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st := Statement{ID: uuid.New(), Index: i, AST: n}
			start := time.Now()
			if err := p.compile(&st); err != nil {
				p.logger.Warn("statement failed",
					zap.String("id", st.ID.String()),
					zap.Int("index", i),
					zap.Error(err),
				)
				return &StatementError{Index: i, ID: st.ID, Err: err}
			}
			p.logger.Debug("compiled statement",
				zap.String("id", st.ID.String()),
				zap.Int("index", i),
				zap.String("kind", string(st.Kind)),
				zap.Duration("took", time.Since(start)),
			)
			out[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Planner) compile(st *Statement) error {
	switch st.AST.Op {
	case ql.OpSelect:
		st.Kind = KindSelect
		lp, err := p.analyzer.Analyze(st.AST)
		if err != nil {
			return err
		}
		st.Plan = lp
		st.Explain = plan.Format(lp)
		items, err := ql.Leaves(st.AST.Children[0], "column list")
		if err != nil {
			return err
		}
		st.SQL, st.Args, err = p.renderer.RenderSelect(lp, items)
		if err != nil {
			return fmt.Errorf("render select: %w", err)
		}
	case ql.OpInsert:
		st.Kind = KindInsert
		ins, err := ql.NewInsert(st.AST)
		if err != nil {
			return err
		}
		st.Insert = ins
		st.SQL, st.Args, err = p.renderer.RenderInsert(ins)
		if err != nil {
			return fmt.Errorf("render insert: %w", err)
		}
	default:
		return fmt.Errorf("no compilation for %s statement", st.AST.Op)
	}
	return nil
}
