// Package kotlin rebuilds, from tree-sitter syntax, the semantic model the
// frozen-object inspections need: declarations, name-based reference search,
// read/write access and operation expressions.
//
// Resolution is purely syntactic. A reference is an identifier with the
// declaration's name, inside its scope, not shadowed by a closer declaration,
// and either unqualified or qualified by this or one of the declaration's
// qualifiers.
package kotlin

import (
	"github.com/phobologic/frozenguard/internal/graph"
	"github.com/phobologic/frozenguard/internal/inspect"
	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/syntax"
)

// File is one parsed Kotlin file and the declarations found in it.
type File struct {
	Index int
	Tree  *syntax.Tree
	// Bindings are the val/var declarations in source order.
	Bindings []*model.Declaration
	// Objects are the singleton declarations in source order.
	Objects []*model.Declaration

	fileSuppressed map[string]bool
	lineSuppressed map[int]map[string]bool
}

// Path returns the repo-relative path of the file.
func (f *File) Path() string { return f.Tree.Path }

// Project holds every file of one analysis pass.
type Project struct {
	Files []*File
	index *graph.Index
}

var (
	_ inspect.Tree              = (*Project)(nil)
	_ inspect.ReferenceSearcher = (*Project)(nil)
	_ inspect.AccessOracle      = (*Project)(nil)
)

// NewProject indexes trees and extracts their declarations. The position of
// a tree in trees becomes its file index.
func NewProject(trees []*syntax.Tree) *Project {
	p := &Project{index: graph.BuildIndex(trees, kSimpleIdentifier)}
	for i, tree := range trees {
		f := &File{Index: i, Tree: tree}
		p.Files = append(p.Files, f)
		if tree == nil || len(tree.Nodes) == 0 {
			continue
		}
		collectDeclarations(f)
		collectSuppressions(f)
	}
	return p
}

func (p *Project) node(id model.NodeID) (*syntax.Tree, int, bool) {
	if id.File < 0 || id.File >= len(p.Files) {
		return nil, 0, false
	}
	t := p.Files[id.File].Tree
	if t == nil || id.Node < 0 || id.Node >= len(t.Nodes) {
		return nil, 0, false
	}
	return t, id.Node, true
}

// Parent implements inspect.Tree.
func (p *Project) Parent(id model.NodeID) (model.NodeID, bool) {
	t, i, ok := p.node(id)
	if !ok {
		return model.NodeID{}, false
	}
	parent, ok := t.Parent(i)
	if !ok {
		return model.NodeID{}, false
	}
	return model.NodeID{File: id.File, Node: parent}, true
}

// IsQualifiedAccess implements inspect.Tree.
func (p *Project) IsQualifiedAccess(id model.NodeID) bool {
	t, i, ok := p.node(id)
	if !ok {
		return false
	}
	return isQualified(t, i)
}

func isQualified(t *syntax.Tree, i int) bool {
	switch t.Kind(i) {
	case kNavigationExpression:
		return true
	case kCallExpression:
		callee, ok := t.FirstNamedChild(i)
		return ok && t.Kind(callee) == kNavigationExpression
	case kDirectlyAssignable:
		_, ok := t.FirstChild(i, kNavigationSuffix)
		return ok
	}
	return false
}

// IsBoundary implements inspect.Tree.
func (p *Project) IsBoundary(id model.NodeID) bool {
	t, i, ok := p.node(id)
	if !ok {
		return true
	}
	return has(boundaryKinds, t.Kind(i))
}

// IsOperation implements inspect.Tree.
func (p *Project) IsOperation(id model.NodeID) bool {
	t, i, ok := p.node(id)
	if !ok {
		return false
	}
	return has(operationKinds, t.Kind(i))
}

// CallName implements inspect.Tree. For a.b.name(...) it returns "name".
func (p *Project) CallName(id model.NodeID) string {
	t, i, ok := p.node(id)
	if !ok || t.Kind(i) != kCallExpression {
		return ""
	}
	callee, ok := t.FirstNamedChild(i)
	if !ok || t.Kind(callee) != kNavigationExpression {
		return ""
	}
	return selectorName(t, callee)
}

// selectorName returns the identifier after the last dot of a navigation.
func selectorName(t *syntax.Tree, nav int) string {
	suffix, ok := t.LastNamedChild(nav)
	if !ok || t.Kind(suffix) != kNavigationSuffix {
		return ""
	}
	name, ok := t.FirstChild(suffix, kSimpleIdentifier)
	if !ok {
		return ""
	}
	return t.Text(name)
}

// Span implements inspect.Tree.
func (p *Project) Span(id model.NodeID) model.Span {
	t, i, ok := p.node(id)
	if !ok {
		return model.Span{}
	}
	return spanOf(t, i)
}

func spanOf(t *syntax.Tree, i int) model.Span {
	n := &t.Nodes[i]
	return model.Span{
		File:      t.Path,
		Start:     n.Start,
		End:       n.End,
		Line:      n.Line,
		Column:    n.Column,
		EndLine:   n.EndLine,
		EndColumn: n.EndColumn,
	}
}

// Access implements inspect.AccessOracle. id is the outermost qualified
// access of a reference, or the reference itself.
func (p *Project) Access(id model.NodeID) model.Access {
	t, i, ok := p.node(id)
	if !ok {
		return model.Unknown
	}
	parent, ok := t.Parent(i)
	if !ok {
		return model.Unknown
	}

	if t.Kind(i) == kDirectlyAssignable {
		if t.Kind(parent) == kAssignment && assignableByCall(t, i) {
			return model.Read
		}
		if t.Kind(parent) == kAssignment {
			return model.Write
		}
		return model.Unknown
	}

	switch t.Kind(parent) {
	case kDirectlyAssignable:
		gp, ok := t.Parent(parent)
		if !ok || t.Kind(gp) != kAssignment {
			return model.Unknown
		}
		named := t.NamedChildren(parent)
		if len(named) == 1 && named[0] == i {
			return model.Write
		}
		// receiver of a[i] = v: the set operator is a call on a
		return model.Read
	case kPostfixExpression:
		if first, ok := t.FirstNamedChild(parent); ok && first == i && t.HasChildText(parent, "++", "--") {
			return model.Write
		}
	case kPrefixExpression:
		if last, ok := t.LastNamedChild(parent); ok && last == i && t.HasChildText(parent, "++", "--") {
			return model.Write
		}
	}
	return model.Read
}

// assignableByCall reports whether the assignment target is an indexed
// access, which Kotlin lowers to a set operator call.
func assignableByCall(t *syntax.Tree, dae int) bool {
	last, ok := t.LastNamedChild(dae)
	return ok && t.Kind(last) == kIndexingSuffix
}
