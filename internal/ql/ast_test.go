package ql

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func ident(name string) *Node { return NewLeaf(LitIdent, name) }

func names(lits []Literal) []string {
	out := make([]string, len(lits))
	for i, l := range lits {
		out[i] = l.Text
	}
	return out
}

func TestNodeString(t *testing.T) {
	n := NewNode(OpSelect,
		Chain(ident("a"), ident("b")),
		NewNode(OpFrom, ident("t")),
	)
	want := "(select (comma a b) (from t))"
	if got := n.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	lit := NewLeaf(LitString, "it's")
	if got := lit.String(); got != "'it''s'" {
		t.Fatalf("expected quoted string, got %q", got)
	}
}

func TestNodeValidate(t *testing.T) {
	valid := NewNode(OpSelect, ident("a"), NewNode(OpFrom, ident("t")))
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid node, got %v", err)
	}

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"neither", &Node{}, "neither operator nor literal"},
		{"both", &Node{Op: OpComma, Lit: &Literal{Text: "x"}}, "also carries literal"},
		{"leaf with children", &Node{Lit: &Literal{Text: "x"}, Children: []*Node{ident("y")}}, "has children"},
		{"bad arity", NewNode(OpComma, ident("a")), "has 1 children, want 2"},
		{"nested", NewNode(OpFrom, &Node{}), "neither operator nor literal"},
	}
	for _, tt := range tests {
		err := tt.node.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %q", tt.name, tt.want, err)
		}
	}
}

func TestChain(t *testing.T) {
	if Chain() != nil {
		t.Fatal("empty chain should be nil")
	}
	single := ident("a")
	if Chain(single) != single {
		t.Fatal("single item chain should be the item itself")
	}
	got := Chain(ident("a"), ident("b"), ident("c")).String()
	if got != "(comma a (comma b c))" {
		t.Fatalf("expected right-nested chain, got %s", got)
	}
}

func TestLeavesOrderIndependentOfNesting(t *testing.T) {
	right := Chain(ident("a"), ident("b"), ident("c"), ident("d"))
	left := NewNode(OpComma,
		NewNode(OpComma,
			NewNode(OpComma, ident("a"), ident("b")),
			ident("c")),
		ident("d"))
	balanced := NewNode(OpComma,
		NewNode(OpComma, ident("a"), ident("b")),
		NewNode(OpComma, ident("c"), ident("d")))

	want := []string{"a", "b", "c", "d"}
	for name, n := range map[string]*Node{"right": right, "left": left, "balanced": balanced} {
		lits, err := Leaves(n, "test list")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := names(lits); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestLeavesSingle(t *testing.T) {
	lits, err := Leaves(NewLeaf(LitInteger, "5"), "values")
	if err != nil {
		t.Fatal(err)
	}
	if len(lits) != 1 || lits[0].Kind != LitInteger || lits[0].Text != "5" {
		t.Fatalf("unexpected leaves %v", lits)
	}
}

func TestLeavesRejectsOtherOperators(t *testing.T) {
	n := Chain(ident("a"), NewNode(OpCall, ident("count"), ident("b")))
	_, err := Leaves(n, "column list")
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if !strings.Contains(err.Error(), "unexpected call node in column list") {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestLiteralInt(t *testing.T) {
	v, err := Literal{Kind: LitInteger, Text: "-12"}.Int()
	if err != nil || v != -12 {
		t.Fatalf("expected -12, got %d (%v)", v, err)
	}
	if _, err := (Literal{Kind: LitString, Text: "12"}).Int(); err == nil {
		t.Fatal("string literal should not convert to int")
	}
}

func TestNewInsert(t *testing.T) {
	n := NewNode(OpInsert,
		ident("table1"),
		Chain(ident("col1"), ident("col2")),
		NewNode(OpValues, Chain(NewLeaf(LitInteger, "1"), NewLeaf(LitString, "valStr"))),
	)
	ins, err := NewInsert(n)
	if err != nil {
		t.Fatal(err)
	}
	want := &Insert{
		Table:   "table1",
		Columns: []string{"col1", "col2"},
		Values:  []Literal{{Kind: LitInteger, Text: "1"}, {Kind: LitString, Text: "valStr"}},
	}
	if !reflect.DeepEqual(ins, want) {
		t.Fatalf("expected %+v, got %+v", want, ins)
	}
}

func TestNewInsertErrors(t *testing.T) {
	if _, err := NewInsert(NewNode(OpSelect, ident("a"), NewNode(OpFrom, ident("t")))); !errors.Is(err, ErrShape) {
		t.Fatalf("select node: expected ErrShape, got %v", err)
	}
	if _, err := NewInsert(nil); !errors.Is(err, ErrShape) {
		t.Fatalf("nil node: expected ErrShape, got %v", err)
	}

	mismatch := NewNode(OpInsert,
		ident("t"),
		Chain(ident("a"), ident("b")),
		NewNode(OpValues, NewLeaf(LitInteger, "1")),
	)
	_, err := NewInsert(mismatch)
	if err == nil || !strings.Contains(err.Error(), "2 columns but 1 values") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}
