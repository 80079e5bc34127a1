package kotlin

import (
	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/syntax"
)

// defaultCompanionName is the implicit name of an unnamed companion object.
const defaultCompanionName = "Companion"

// collectDeclarations fills f.Bindings and f.Objects in source order.
func collectDeclarations(f *File) {
	t := f.Tree
	var objects []int
	t.Walk(func(i int) bool {
		switch t.Kind(i) {
		case kPropertyDeclaration:
			if d := property(f, i); d != nil {
				f.Bindings = append(f.Bindings, d)
			}
		case kClassParameter:
			if d := classParameter(f, i); d != nil {
				f.Bindings = append(f.Bindings, d)
			}
		case kParameter:
			if d := valueParameter(f, i); d != nil {
				f.Bindings = append(f.Bindings, d)
			}
		case kVariableDeclaration:
			if d := loopOrLambdaVariable(f, i); d != nil {
				f.Bindings = append(f.Bindings, d)
			}
		case kCatchBlock:
			if d := catchParameter(f, i); d != nil {
				f.Bindings = append(f.Bindings, d)
			}
		case kObjectDeclaration, kCompanionObject:
			objects = append(objects, i)
		}
		return true
	})

	byNode := make(map[int]*model.Declaration, len(f.Bindings))
	for _, d := range f.Bindings {
		byNode[d.Node.Node] = d
	}
	for _, i := range objects {
		if d := singleton(f, i, byNode); d != nil {
			f.Objects = append(f.Objects, d)
		}
	}
}

func (f *File) id(i int) model.NodeID {
	return model.NodeID{File: f.Index, Node: i}
}

func newBinding(f *File, node int, name, binding string, kind model.DeclKind, scope int) *model.Declaration {
	return &model.Declaration{
		Name:        name,
		Kind:        kind,
		Binding:     binding,
		Mutable:     binding == "var",
		Annotations: annotationNames(f.Tree, node),
		Span:        spanOf(f.Tree, node),
		Node:        f.id(node),
		Scope:       f.id(scope),
	}
}

// property handles val/var declarations. Destructuring declarations are
// skipped.
func property(f *File, i int) *model.Declaration {
	t := f.Tree
	name := propertyName(t, i)
	if name == "" {
		return nil
	}
	binding := bindingKeyword(t, i)
	if binding == "" {
		return nil
	}
	parent, ok := t.Parent(i)
	if !ok {
		return nil
	}

	switch t.Kind(parent) {
	case kSourceFile:
		d := newBinding(f, i, name, binding, model.Property, parent)
		d.ProjectWide = true
		return d
	case kClassBody:
		owner, ok := t.Parent(parent)
		if !ok {
			return nil
		}
		d := newBinding(f, i, name, binding, model.Property, owner)
		switch t.Kind(owner) {
		case kObjectDeclaration:
			d.Qualifiers = []string{objectName(t, owner)}
		case kCompanionObject:
			// companion members are visible unqualified in the outer class
			if outer, ok := t.Ancestor(owner, kClassDeclaration, kObjectDeclaration); ok {
				d.Scope = f.id(outer)
			}
			d.Qualifiers = companionQualifiers(t, owner)
		}
		return d
	case kStatements:
		return newBinding(f, i, name, binding, model.Local, parent)
	}
	return nil
}

// propertyName returns the declared name of a property_declaration, or ""
// for destructuring declarations.
func propertyName(t *syntax.Tree, i int) string {
	vd, ok := t.FirstChild(i, kVariableDeclaration)
	if !ok {
		return ""
	}
	name, ok := t.FirstChild(vd, kSimpleIdentifier)
	if !ok {
		return ""
	}
	return t.Text(name)
}

// bindingKeyword returns "val" or "var". Older grammar versions attach the
// keyword directly instead of through binding_pattern_kind.
func bindingKeyword(t *syntax.Tree, i int) string {
	if bp, ok := t.FirstChild(i, kBindingPatternKind); ok {
		return t.Text(bp)
	}
	for _, c := range t.Nodes[i].Children {
		if t.Nodes[c].Named {
			continue
		}
		if text := t.Text(c); text == "val" || text == "var" {
			return text
		}
	}
	return ""
}

// classParameter handles primary-constructor parameters that declare a
// property. Plain constructor parameters are not bindings.
func classParameter(f *File, i int) *model.Declaration {
	t := f.Tree
	binding := bindingKeyword(t, i)
	if binding == "" {
		return nil
	}
	name, ok := t.FirstChild(i, kSimpleIdentifier)
	if !ok {
		return nil
	}
	owner, ok := t.Ancestor(i, kClassDeclaration)
	if !ok {
		return nil
	}
	return newBinding(f, i, t.Text(name), binding, model.Property, owner)
}

func valueParameter(f *File, i int) *model.Declaration {
	t := f.Tree
	params, ok := t.Parent(i)
	if !ok || t.Kind(params) != kFunctionValueParameters {
		return nil
	}
	owner, ok := t.Parent(params)
	if !ok {
		return nil
	}
	name, ok := t.FirstChild(i, kSimpleIdentifier)
	if !ok {
		return nil
	}
	return newBinding(f, i, t.Text(name), "val", model.Parameter, owner)
}

// loopOrLambdaVariable handles for-loop variables and explicit lambda
// parameters.
func loopOrLambdaVariable(f *File, i int) *model.Declaration {
	t := f.Tree
	parent, ok := t.Parent(i)
	if !ok {
		return nil
	}
	var scope int
	switch t.Kind(parent) {
	case kForStatement:
		scope = parent
	case kLambdaParameters:
		lambda, ok := t.Parent(parent)
		if !ok {
			return nil
		}
		scope = lambda
	default:
		return nil
	}
	name, ok := t.FirstChild(i, kSimpleIdentifier)
	if !ok {
		return nil
	}
	return newBinding(f, i, t.Text(name), "val", model.Parameter, scope)
}

func catchParameter(f *File, i int) *model.Declaration {
	t := f.Tree
	name, ok := t.FirstChild(i, kSimpleIdentifier)
	if !ok {
		return nil
	}
	d := newBinding(f, i, t.Text(name), "val", model.Parameter, i)
	d.Span = spanOf(t, name)
	return d
}

// singleton builds an object declaration together with its property members.
func singleton(f *File, i int, byNode map[int]*model.Declaration) *model.Declaration {
	t := f.Tree
	d := &model.Declaration{
		Kind:        model.Object,
		Annotations: annotationNames(t, i),
		Span:        spanOf(t, i),
		Node:        f.id(i),
		Scope:       f.id(i),
	}
	if t.Kind(i) == kCompanionObject {
		q := companionQualifiers(t, i)
		d.Name = q[len(q)-1]
		d.Qualifiers = q[:len(q)-1]
	} else {
		d.Name = objectName(t, i)
	}
	if d.Name == "" {
		return nil
	}

	body, ok := t.FirstChild(i, kClassBody)
	if !ok {
		return d
	}
	for _, c := range t.Nodes[body].Children {
		if m, ok := byNode[c]; ok && t.Kind(c) == kPropertyDeclaration {
			d.Members = append(d.Members, m)
		}
	}
	return d
}

func objectName(t *syntax.Tree, i int) string {
	name, ok := t.FirstChild(i, kTypeIdentifier)
	if !ok {
		return ""
	}
	return t.Text(name)
}

// companionQualifiers returns the receiver names that reach a companion
// member: the outer class and the companion's own name.
func companionQualifiers(t *syntax.Tree, i int) []string {
	name := objectName(t, i)
	if name == "" {
		name = defaultCompanionName
	}
	var q []string
	if outer, ok := t.Ancestor(i, kClassDeclaration, kObjectDeclaration); ok {
		if on := objectName(t, outer); on != "" {
			q = append(q, on)
		}
	}
	return append(q, name)
}
