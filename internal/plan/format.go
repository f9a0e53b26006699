package plan

import (
	"strings"
)

type planPrinter struct {
	sb strings.Builder
}

// Format returns a tree rendering of a logical plan, one operator per line:
//
//	projection(col1)
//	├─ read(table1)
//	└─ read(table2)
func Format(p *LogicalPlan) string {
	if p == nil {
		return ""
	}
	printer := &planPrinter{}
	printer.sb.WriteString(operatorName(p.Root.Operator))
	printer.sb.WriteByte('\n')
	printer.walkChildren(p.Root, "")
	return strings.TrimSuffix(printer.sb.String(), "\n")
}

func (p *planPrinter) walkChildren(n LogicalNode, prefix string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		connector, indent := "├─ ", "│  "
		if last {
			connector, indent = "└─ ", "   "
		}
		p.sb.WriteString(prefix)
		p.sb.WriteString(connector)
		p.sb.WriteString(operatorName(c.Operator))
		p.sb.WriteByte('\n')
		p.walkChildren(c, prefix+indent)
	}
}

func operatorName(op Operator) string {
	if op == nil {
		return "none"
	}
	return op.String()
}

func (p *LogicalPlan) String() string {
	return Format(p)
}
