package kotlin

import (
	"strings"

	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/syntax"
)

const (
	suppressAnnotation = "Suppress"
	noInspectionPrefix = "//noinspection"
)

// annotationNames returns the short names of the annotations attached to
// node i, such as "ThreadLocal" for @kotlin.native.ThreadLocal.
func annotationNames(t *syntax.Tree, i int) []string {
	var names []string
	for _, a := range annotationsOf(t, i) {
		if name := annotationName(t, a); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// annotationsOf returns the annotation nodes of i, whether held in a
// modifiers child or attached directly as in an annotated expression.
func annotationsOf(t *syntax.Tree, i int) []int {
	var out []int
	for _, c := range t.Nodes[i].Children {
		switch t.Kind(c) {
		case kAnnotation:
			out = append(out, c)
		case kModifiers:
			for _, m := range t.Nodes[c].Children {
				if t.Kind(m) == kAnnotation {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// annotationTarget returns the user_type of an annotation and its argument
// list, which is -1 for annotations without arguments.
func annotationTarget(t *syntax.Tree, a int) (userType, args int, ok bool) {
	for _, c := range t.Nodes[a].Children {
		switch t.Kind(c) {
		case kConstructorInvocation:
			ut, found := t.FirstChild(c, kUserType)
			if !found {
				return -1, -1, false
			}
			va, found := t.FirstChild(c, kValueArguments)
			if !found {
				va = -1
			}
			return ut, va, true
		case kUserType:
			return c, -1, true
		}
	}
	return -1, -1, false
}

func annotationName(t *syntax.Tree, a int) string {
	ut, _, ok := annotationTarget(t, a)
	if !ok {
		return ""
	}
	name := ""
	for _, c := range t.Nodes[ut].Children {
		if t.Kind(c) == kTypeIdentifier {
			name = t.Text(c)
		}
	}
	return name
}

// suppressedIDs returns the string arguments of a @Suppress annotation.
func suppressedIDs(t *syntax.Tree, a int) []string {
	if annotationName(t, a) != suppressAnnotation {
		return nil
	}
	_, args, ok := annotationTarget(t, a)
	if !ok || args < 0 {
		return nil
	}
	var ids []string
	for _, arg := range t.Nodes[args].Children {
		if t.Kind(arg) != kValueArgument {
			continue
		}
		if lit, ok := t.FirstChild(arg, kStringLiteral); ok {
			ids = append(ids, strings.Trim(t.Text(lit), `"`))
		}
	}
	return ids
}

// collectSuppressions records @file:Suppress IDs and //noinspection
// comments of f.
func collectSuppressions(f *File) {
	t := f.Tree
	f.fileSuppressed = make(map[string]bool)
	f.lineSuppressed = make(map[int]map[string]bool)
	t.Walk(func(i int) bool {
		kind := t.Kind(i)
		switch {
		case kind == kFileAnnotation:
			for _, id := range suppressedIDs(t, i) {
				f.fileSuppressed[id] = true
			}
			return false
		case has(commentKinds, kind):
			text := strings.TrimSpace(t.Text(i))
			rest, ok := strings.CutPrefix(text, noInspectionPrefix)
			if !ok {
				return false
			}
			line := t.Nodes[i].Line
			covered := []int{line}
			// a comment on its own line also covers the next line
			if strings.HasPrefix(strings.TrimSpace(t.LineText(line)), noInspectionPrefix) {
				covered = append(covered, line+1)
			}
			ids := strings.FieldsFunc(rest, func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t'
			})
			for _, l := range covered {
				if f.lineSuppressed[l] == nil {
					f.lineSuppressed[l] = make(map[string]bool)
				}
				for _, id := range ids {
					f.lineSuppressed[l][id] = true
				}
			}
			return false
		}
		return true
	})
}

// Suppressed reports whether v is silenced by @Suppress on an enclosing
// declaration or expression, by @file:Suppress, or by a //noinspection
// comment on the same or the preceding line.
func (p *Project) Suppressed(v model.Violation) bool {
	if v.Node.File < 0 || v.Node.File >= len(p.Files) {
		return false
	}
	f := p.Files[v.Node.File]
	t := f.Tree
	if t == nil || v.Node.Node < 0 || v.Node.Node >= len(t.Nodes) {
		return false
	}
	id := v.SuppressionID
	if f.fileSuppressed[id] {
		return true
	}
	line := t.Nodes[v.Node.Node].Line
	if f.lineSuppressed[line][id] {
		return true
	}

	cur := v.Node.Node
	for range maxDepth {
		for _, a := range annotationsOf(t, cur) {
			for _, s := range suppressedIDs(t, a) {
				if s == id {
					return true
				}
			}
		}
		parent, ok := t.Parent(cur)
		if !ok {
			return false
		}
		cur = parent
	}
	return false
}
