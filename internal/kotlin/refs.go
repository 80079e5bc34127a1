package kotlin

import (
	"github.com/phobologic/frozenguard/internal/graph"
	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/syntax"
)

// maxDepth bounds every upward walk.
const maxDepth = 1 << 12

// FindReferences implements inspect.ReferenceSearcher. References come back
// ordered by file and then by offset.
func (p *Project) FindReferences(decl *model.Declaration) []model.Reference {
	if decl == nil || decl.Name == "" {
		return nil
	}
	var candidates []graph.Occurrence
	if decl.ProjectWide || len(decl.Qualifiers) > 0 {
		candidates = p.index.Lookup(decl.Name)
	} else {
		candidates = p.index.InFile(decl.Name, decl.Scope.File)
	}

	var refs []model.Reference
	for _, occ := range candidates {
		t := p.Files[occ.File].Tree
		if !p.refersTo(decl, t, occ) {
			continue
		}
		refs = append(refs, model.Reference{
			Node: model.NodeID{File: occ.File, Node: occ.Node},
			Pos:  model.Position{File: occ.File, Offset: t.Nodes[occ.Node].Start},
			Span: spanOf(t, occ.Node),
		})
	}
	return refs
}

func (p *Project) refersTo(decl *model.Declaration, t *syntax.Tree, occ graph.Occurrence) bool {
	i := occ.Node
	if !isReferencePosition(t, i) {
		return false
	}
	inScope := decl.ProjectWide ||
		(occ.File == decl.Scope.File && t.Contains(decl.Scope.Node, i))

	if recv, ok := receiverOf(t, i); ok {
		if t.Kind(recv) == kThisExpression {
			return inScope && !decl.ProjectWide
		}
		return hasQualifier(decl, receiverName(t, recv))
	}

	if !inScope {
		return false
	}
	if decl.Kind == model.Local && t.Nodes[i].Start < decl.Span.End {
		return false
	}
	return !shadowed(decl, t, occ.File, i)
}

// isReferencePosition filters out identifiers that name something other
// than a value: declaration names, callees, named-argument labels and infix
// function names.
func isReferencePosition(t *syntax.Tree, i int) bool {
	parent, ok := t.Parent(i)
	if !ok {
		return false
	}
	kind := t.Kind(parent)
	if has(declarationNameParents, kind) {
		return false
	}
	switch kind {
	case kCallExpression:
		if first, ok := t.FirstNamedChild(parent); ok && first == i {
			return false
		}
	case kValueArgument:
		if first, ok := t.FirstNamedChild(parent); ok && first == i && t.HasChildText(parent, "=") {
			return false
		}
	case kInfixExpression:
		if named := t.NamedChildren(parent); len(named) == 3 && named[1] == i {
			return false
		}
	case kNavigationSuffix:
		// a.f() names a method, not a property
		nav, ok := t.Parent(parent)
		if !ok {
			return true
		}
		call, ok := t.Parent(nav)
		if ok && t.Kind(call) == kCallExpression {
			if callee, ok := t.FirstNamedChild(call); ok && callee == nav {
				return false
			}
		}
	}
	return true
}

// receiverOf returns the receiver expression when i is the selector of a
// navigation, as in recv.i. An assignment target a.b.i is one flat
// directly_assignable_expression, so there the receiver is the suffix .b
// right before i.
func receiverOf(t *syntax.Tree, i int) (int, bool) {
	suffix, ok := t.Parent(i)
	if !ok || t.Kind(suffix) != kNavigationSuffix {
		return -1, false
	}
	owner, ok := t.Parent(suffix)
	if !ok {
		return -1, false
	}
	switch t.Kind(owner) {
	case kNavigationExpression:
		recv, ok := t.FirstNamedChild(owner)
		if !ok || recv == suffix {
			return -1, false
		}
		return recv, true
	case kDirectlyAssignable:
		return previousNamedSibling(t, owner, suffix)
	}
	return -1, false
}

func previousNamedSibling(t *syntax.Tree, parent, child int) (int, bool) {
	prev := -1
	for _, c := range t.Nodes[parent].Children {
		if c == child {
			return prev, prev >= 0
		}
		if t.Nodes[c].Named {
			prev = c
		}
	}
	return -1, false
}

// receiverName returns the name a receiver ends with: S for S, C for a.b.C
// and for the suffix .C of a flat assignment target.
func receiverName(t *syntax.Tree, recv int) string {
	switch t.Kind(recv) {
	case kSimpleIdentifier:
		return t.Text(recv)
	case kNavigationExpression:
		return selectorName(t, recv)
	case kNavigationSuffix:
		return identName(t, recv)
	}
	return ""
}

func hasQualifier(decl *model.Declaration, name string) bool {
	if name == "" {
		return false
	}
	for _, q := range decl.Qualifiers {
		if q == name {
			return true
		}
	}
	return false
}

// shadowed reports whether a declaration between the occurrence i and the
// scope of decl rebinds decl's name.
func shadowed(decl *model.Declaration, t *syntax.Tree, file, i int) bool {
	cur := i
	for range maxDepth {
		parent, ok := t.Parent(cur)
		if !ok {
			return false
		}
		if !decl.ProjectWide && file == decl.Scope.File && parent == decl.Scope.Node {
			return false
		}
		if declaresName(t, parent, cur, decl, file) {
			return true
		}
		cur = parent
	}
	return false
}

// declaresName reports whether scope node n, entered from its child via,
// declares a binding with decl's name other than decl itself.
func declaresName(t *syntax.Tree, n, via int, decl *model.Declaration, file int) bool {
	name := decl.Name
	self := func(c int) bool { return decl.Node == model.NodeID{File: file, Node: c} }

	switch t.Kind(n) {
	case kFunctionDeclaration, kSecondaryConstructor, kAnonymousFunction:
		params, ok := t.FirstChild(n, kFunctionValueParameters)
		if !ok {
			return false
		}
		for _, c := range t.Nodes[params].Children {
			if t.Kind(c) == kParameter && !self(c) && identName(t, c) == name {
				return true
			}
		}
	case kLambdaLiteral:
		params, ok := t.FirstChild(n, kLambdaParameters)
		if !ok {
			return false
		}
		for _, c := range t.Nodes[params].Children {
			if t.Kind(c) == kVariableDeclaration && !self(c) && identName(t, c) == name {
				return true
			}
		}
	case kForStatement:
		if t.Kind(via) != kControlStructureBody {
			return false
		}
		vd, ok := t.FirstChild(n, kVariableDeclaration)
		return ok && !self(vd) && identName(t, vd) == name
	case kCatchBlock:
		return !self(n) && identName(t, n) == name
	case kStatements:
		for _, c := range t.Nodes[n].Children {
			if c == via {
				break
			}
			if t.Kind(c) == kPropertyDeclaration && !self(c) && propertyName(t, c) == name {
				return true
			}
		}
	case kClassBody:
		for _, c := range t.Nodes[n].Children {
			if t.Kind(c) == kPropertyDeclaration && !self(c) && propertyName(t, c) == name {
				return true
			}
		}
	}
	return false
}

func identName(t *syntax.Tree, i int) string {
	id, ok := t.FirstChild(i, kSimpleIdentifier)
	if !ok {
		return ""
	}
	return t.Text(id)
}
