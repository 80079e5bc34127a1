package inspect

import "github.com/phobologic/frozenguard/internal/model"

// FreezeCallName is the callee name that freezes an object graph.
const FreezeCallName = "freeze"

// FreezePoint marks the reference that froze a declaration. References after
// Index are in the frozen interval.
type FreezePoint struct {
	Index int
	Pos   model.Position
}

// Locator finds the freeze point among a declaration's references.
type Locator struct {
	Tree Tree
}

// Locate scans refs, which must be in ascending position order, and returns
// the first reference whose qualified access calls freeze. Later freeze
// calls are ignored.
func (l Locator) Locate(refs []model.Reference) (FreezePoint, bool) {
	for i, ref := range refs {
		if l.isFreezeCall(ref) {
			return FreezePoint{Index: i, Pos: ref.Pos}, true
		}
	}
	return FreezePoint{}, false
}

func (l Locator) isFreezeCall(ref model.Reference) bool {
	top := TopmostQualified(l.Tree, ref.Node)
	if top == ref.Node {
		return false
	}
	return l.Tree.CallName(top) == FreezeCallName
}
