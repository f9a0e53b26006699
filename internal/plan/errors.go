package plan

import (
	"errors"
	"fmt"

	"github.com/atlekbai/sqlplan/internal/ql"
)

// ErrUnsupported is matched by every *AnalysisError.
var ErrUnsupported = errors.New("unsupported construct")

// AnalysisError reports an AST shape the analyzer has no lowering rule for.
type AnalysisError struct {
	Op      ql.Op
	Context string
	Err     error // underlying shape error, may be nil
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error: unsupported %s node in %s", e.Op, e.Context)
}

func (e *AnalysisError) Is(target error) bool { return target == ErrUnsupported }

func (e *AnalysisError) Unwrap() error { return e.Err }

func unsupported(n *ql.Node, context string) *AnalysisError {
	op := ql.OpNone
	if n != nil {
		op = n.Op
	}
	return &AnalysisError{Op: op, Context: context}
}
