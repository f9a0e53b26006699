package plan

import (
	"fmt"
	"strings"
)

// LogicalPlan is the analyzer output: a tree of relational operators
// describing what to compute, independent of how.
type LogicalPlan struct {
	Root LogicalNode
}

// LogicalNode holds one operator and the nodes it consumes. Read nodes are
// always leaves.
type LogicalNode struct {
	Operator Operator
	Children []LogicalNode
}

// Column is a projected column, identified by name only.
type Column struct {
	Name string
}

// Table is a scanned table, identified by name only.
type Table struct {
	Name string
}

// Operator is one of Projection, Filter, Read, Join, Group, Sort, Limit or
// Distinct.
type Operator interface {
	operator()
	String() string
}

// Projection keeps the listed columns of its input, in order.
type Projection struct {
	Columns []Column
}

// Read scans a whole table.
type Read struct {
	Table Table
}

// Filter, Join, Group, Sort, Limit and Distinct are declared so plans can be
// extended with WHERE/JOIN/GROUP BY/ORDER BY/LIMIT/DISTINCT. The analyzer
// never builds them.
type (
	Filter   struct{}
	Join     struct{}
	Group    struct{}
	Sort     struct{}
	Limit    struct{}
	Distinct struct{}
)

func (Projection) operator() {}
func (Read) operator()       {}
func (Filter) operator()     {}
func (Join) operator()       {}
func (Group) operator()      {}
func (Sort) operator()       {}
func (Limit) operator()      {}
func (Distinct) operator()   {}

func (p Projection) String() string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return fmt.Sprintf("projection(%s)", strings.Join(names, ", "))
}

func (r Read) String() string   { return fmt.Sprintf("read(%s)", r.Table.Name) }
func (Filter) String() string   { return "filter" }
func (Join) String() string     { return "join" }
func (Group) String() string    { return "group" }
func (Sort) String() string     { return "sort" }
func (Limit) String() string    { return "limit" }
func (Distinct) String() string { return "distinct" }

// Tables returns the tables read anywhere under n, left to right.
func (n LogicalNode) Tables() []Table {
	var out []Table
	n.walk(func(ln LogicalNode) {
		if r, ok := ln.Operator.(Read); ok {
			out = append(out, r.Table)
		}
	})
	return out
}

func (n LogicalNode) walk(visit func(LogicalNode)) {
	visit(n)
	for _, c := range n.Children {
		c.walk(visit)
	}
}
