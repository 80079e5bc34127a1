// Package syntax holds an immutable, parser-independent syntax tree.
//
// Nodes live in a preorder arena, so a node's index also orders it by start
// offset, and every parent index is smaller than its children's.
package syntax

import "bytes"

// maxDepth bounds upward walks.
const maxDepth = 1 << 12

// Node is one syntax node. Lines and columns are 1-based.
type Node struct {
	Kind      string
	Named     bool
	Start     int
	End       int
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Parent    int
	Children  []int
}

// Tree is a parsed file.
type Tree struct {
	Path     string
	Source   []byte
	Nodes    []Node
	HasError bool
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// Kind returns the node kind, or "" for an out-of-range index.
func (t *Tree) Kind(i int) string {
	if i < 0 || i >= len(t.Nodes) {
		return ""
	}
	return t.Nodes[i].Kind
}

// Parent returns the parent of i, or false at the root.
func (t *Tree) Parent(i int) (int, bool) {
	if i <= 0 || i >= len(t.Nodes) {
		return -1, false
	}
	p := t.Nodes[i].Parent
	return p, p >= 0
}

// Text returns the source text of node i.
func (t *Tree) Text(i int) string {
	n := &t.Nodes[i]
	return string(t.Source[n.Start:n.End])
}

// NamedChildren returns the named children of i in source order.
func (t *Tree) NamedChildren(i int) []int {
	var out []int
	for _, c := range t.Nodes[i].Children {
		if t.Nodes[c].Named {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child of i with the given kind.
func (t *Tree) FirstChild(i int, kind string) (int, bool) {
	for _, c := range t.Nodes[i].Children {
		if t.Nodes[c].Kind == kind {
			return c, true
		}
	}
	return -1, false
}

// FirstNamedChild returns the first named child of i.
func (t *Tree) FirstNamedChild(i int) (int, bool) {
	for _, c := range t.Nodes[i].Children {
		if t.Nodes[c].Named {
			return c, true
		}
	}
	return -1, false
}

// LastNamedChild returns the last named child of i.
func (t *Tree) LastNamedChild(i int) (int, bool) {
	ch := t.Nodes[i].Children
	for k := len(ch) - 1; k >= 0; k-- {
		if t.Nodes[ch[k]].Named {
			return ch[k], true
		}
	}
	return -1, false
}

// HasChildText reports whether i has an anonymous child whose text is one of tokens.
func (t *Tree) HasChildText(i int, tokens ...string) bool {
	for _, c := range t.Nodes[i].Children {
		if t.Nodes[c].Named {
			continue
		}
		text := t.Text(c)
		for _, tok := range tokens {
			if text == tok {
				return true
			}
		}
	}
	return false
}

// Contains reports whether node j lies inside the subtree of i.
func (t *Tree) Contains(i, j int) bool {
	if j < i {
		return false
	}
	a, b := &t.Nodes[i], &t.Nodes[j]
	return b.Start >= a.Start && b.End <= a.End
}

// Ancestor returns the nearest strict ancestor of i whose kind is one of kinds.
func (t *Tree) Ancestor(i int, kinds ...string) (int, bool) {
	cur := i
	for range maxDepth {
		p, ok := t.Parent(cur)
		if !ok {
			return -1, false
		}
		for _, k := range kinds {
			if t.Nodes[p].Kind == k {
				return p, true
			}
		}
		cur = p
	}
	return -1, false
}

// Walk visits every node in preorder. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(i int) bool) {
	if len(t.Nodes) == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(i) {
			continue
		}
		ch := t.Nodes[i].Children
		for k := len(ch) - 1; k >= 0; k-- {
			stack = append(stack, ch[k])
		}
	}
}

// LineText returns the 1-based source line without its trailing newline.
func (t *Tree) LineText(line int) string {
	if line < 1 {
		return ""
	}
	src := t.Source
	for l := 1; l < line; l++ {
		idx := bytes.IndexByte(src, '\n')
		if idx < 0 {
			return ""
		}
		src = src[idx+1:]
	}
	if idx := bytes.IndexByte(src, '\n'); idx >= 0 {
		src = src[:idx]
	}
	return string(bytes.TrimRight(src, "\r"))
}
