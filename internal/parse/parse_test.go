package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/phobologic/frozenguard/internal/lang"
	"github.com/phobologic/frozenguard/internal/syntax"
)

func parseKotlin(t *testing.T, source string) *syntax.Tree {
	t.Helper()
	p := lang.Languages[lang.Kotlin].NewParser()
	defer p.Close()
	tree, err := Parse(context.Background(), p, []byte(source), "test.kt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tree
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	p := lang.Languages[lang.Kotlin].NewParser()
	defer p.Close()
	_, err := Parse(context.Background(), p, nil, "empty.kt")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestParseRootAndPath(t *testing.T) {
	t.Parallel()

	tree := parseKotlin(t, "val x = 1\n")
	if tree.Path != "test.kt" {
		t.Errorf("path = %q", tree.Path)
	}
	if tree.Kind(tree.Root()) != "source_file" {
		t.Errorf("root kind = %q, want source_file", tree.Kind(tree.Root()))
	}
	if tree.HasError {
		t.Error("unexpected parse error")
	}
}

func TestParsePreorderInvariants(t *testing.T) {
	t.Parallel()

	tree := parseKotlin(t, `fun main() {
    var x = 1
    x = 2
}
`)
	for i := 1; i < tree.Len(); i++ {
		p, ok := tree.Parent(i)
		if !ok {
			t.Fatalf("node %d has no parent", i)
		}
		if p >= i {
			t.Errorf("node %d: parent %d not before child", i, p)
		}
		if !tree.Contains(p, i) {
			t.Errorf("node %d not inside parent %d", i, p)
		}
	}
}

func TestParsePositions(t *testing.T) {
	t.Parallel()

	tree := parseKotlin(t, "fun main() {\n    var counter = 1\n}\n")

	found := false
	tree.Walk(func(i int) bool {
		if tree.Kind(i) == "simple_identifier" && tree.Text(i) == "counter" {
			found = true
			n := tree.Nodes[i]
			if n.Line != 2 || n.Column != 9 {
				t.Errorf("counter at %d:%d, want 2:9", n.Line, n.Column)
			}
		}
		return true
	})
	if !found {
		t.Fatal("identifier counter not found")
	}
}

func TestParseKeepsAnonymousTokens(t *testing.T) {
	t.Parallel()

	tree := parseKotlin(t, "fun f() {\n    var x = 1\n    x += 2\n}\n")

	found := false
	tree.Walk(func(i int) bool {
		if tree.Kind(i) == "assignment" && tree.HasChildText(i, "+=") {
			found = true
		}
		return true
	})
	if !found {
		t.Fatal("compound assignment with += token not found")
	}
}
