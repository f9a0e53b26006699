package plan

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Struct exports the plan as a protobuf Struct so it can be handed to an
// executor that speaks protobuf. Every node becomes
// {"operator": name, ...fields, "children": [...]}.
func (p *LogicalPlan) Struct() (*structpb.Struct, error) {
	s, err := structpb.NewStruct(nodeMap(p.Root))
	if err != nil {
		return nil, fmt.Errorf("export plan: %w", err)
	}
	return s, nil
}

func nodeMap(n LogicalNode) map[string]any {
	m := map[string]any{}
	switch op := n.Operator.(type) {
	case Projection:
		m["operator"] = "projection"
		cols := make([]any, len(op.Columns))
		for i, c := range op.Columns {
			cols[i] = c.Name
		}
		m["columns"] = cols
	case Read:
		m["operator"] = "read"
		m["table"] = op.Table.Name
	case nil:
		m["operator"] = "none"
	default:
		m["operator"] = op.String()
	}
	children := make([]any, len(n.Children))
	for i, c := range n.Children {
		children[i] = nodeMap(c)
	}
	m["children"] = children
	return m
}
