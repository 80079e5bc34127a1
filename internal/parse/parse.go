// Package parse converts tree-sitter parse trees into syntax trees.
package parse

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/frozenguard/internal/syntax"
)

// ErrEmpty is returned for files with no content.
var ErrEmpty = errors.New("empty source")

// Parse parses source with parser and returns the arena tree.
// The parser must be created for the correct language and must not be
// shared between goroutines.
// filePath is used only for Tree.Path and should be the repo-relative path.
func Parse(ctx context.Context, parser *sitter.Parser, source []byte, filePath string) (*syntax.Tree, error) {
	if len(source) == 0 {
		return nil, ErrEmpty
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no root node", filePath)
	}

	out := &syntax.Tree{
		Path:     filePath,
		Source:   source,
		HasError: root.HasError(),
	}

	type frame struct {
		node   *sitter.Node
		parent int
	}
	stack := []frame{{node: root, parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, err := convert(f.node, f.parent)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filePath, err)
		}
		idx := len(out.Nodes)
		out.Nodes = append(out.Nodes, n)
		if f.parent >= 0 {
			out.Nodes[f.parent].Children = append(out.Nodes[f.parent].Children, idx)
		}

		count := int(f.node.ChildCount())
		for k := count - 1; k >= 0; k-- {
			child := f.node.Child(k)
			if child == nil {
				continue
			}
			stack = append(stack, frame{node: child, parent: idx})
		}
	}

	return out, nil
}

func convert(n *sitter.Node, parent int) (syntax.Node, error) {
	start, err := safecast.Conv[int](n.StartByte())
	if err != nil {
		return syntax.Node{}, err
	}
	end, err := safecast.Conv[int](n.EndByte())
	if err != nil {
		return syntax.Node{}, err
	}
	sp, ep := n.StartPoint(), n.EndPoint()
	line, err := safecast.Conv[int](sp.Row)
	if err != nil {
		return syntax.Node{}, err
	}
	col, err := safecast.Conv[int](sp.Column)
	if err != nil {
		return syntax.Node{}, err
	}
	endLine, err := safecast.Conv[int](ep.Row)
	if err != nil {
		return syntax.Node{}, err
	}
	endCol, err := safecast.Conv[int](ep.Column)
	if err != nil {
		return syntax.Node{}, err
	}
	return syntax.Node{
		Kind:      n.Type(),
		Named:     n.IsNamed(),
		Start:     start,
		End:       end,
		Line:      line + 1,
		Column:    col + 1,
		EndLine:   endLine + 1,
		EndColumn: endCol + 1,
		Parent:    parent,
	}, nil
}
