package graph

import (
	"testing"

	"github.com/phobologic/frozenguard/internal/syntax"
)

// identTree builds a flat tree whose children are identifiers named by names.
func identTree(path string, names ...string) *syntax.Tree {
	var src []byte
	tree := &syntax.Tree{Path: path}
	tree.Nodes = append(tree.Nodes, syntax.Node{Kind: "source_file", Named: true, Parent: -1})
	for _, n := range names {
		start := len(src)
		src = append(src, n...)
		src = append(src, ' ')
		tree.Nodes = append(tree.Nodes, syntax.Node{
			Kind: "simple_identifier", Named: true,
			Start: start, End: start + len(n), Parent: 0,
		})
		tree.Nodes[0].Children = append(tree.Nodes[0].Children, len(tree.Nodes)-1)
	}
	tree.Nodes[0].End = len(src)
	tree.Source = src
	return tree
}

func TestBuildIndexCrossFile(t *testing.T) {
	t.Parallel()

	trees := []*syntax.Tree{
		identTree("a.kt", "foo", "bar", "foo"),
		nil,
		identTree("c.kt", "foo"),
	}

	idx := BuildIndex(trees, "simple_identifier")
	occ := idx.Lookup("foo")
	if len(occ) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occ))
	}
	want := []Occurrence{{File: 0, Node: 1}, {File: 0, Node: 3}, {File: 2, Node: 1}}
	for i := range want {
		if occ[i] != want[i] {
			t.Errorf("occ[%d] = %+v, want %+v", i, occ[i], want[i])
		}
	}

	if got := idx.InFile("foo", 2); len(got) != 1 || got[0].File != 2 {
		t.Errorf("InFile(foo, 2) = %+v", got)
	}
	if got := idx.InFile("foo", 1); len(got) != 0 {
		t.Errorf("InFile(foo, 1) = %+v, want none", got)
	}
}

func TestBuildIndexUnknownName(t *testing.T) {
	t.Parallel()

	idx := BuildIndex([]*syntax.Tree{identTree("a.kt", "foo")}, "simple_identifier")
	if got := idx.Lookup("missing"); len(got) != 0 {
		t.Errorf("expected no occurrences, got %d", len(got))
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	idx := BuildIndex([]*syntax.Tree{identTree("a.kt", "zeta", "alpha", "zeta")}, "simple_identifier")
	names := idx.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Names() = %v", names)
	}

	var nilIdx *Index
	if nilIdx.Names() != nil || nilIdx.Lookup("x") != nil {
		t.Error("nil index should be empty")
	}
}
