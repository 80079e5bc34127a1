package inspect

import "github.com/phobologic/frozenguard/internal/model"

// Classifier decides whether a reference reads or writes its declaration.
type Classifier struct {
	Tree   Tree
	Oracle AccessOracle
}

// Classify returns the expression ref is classified through and whether it
// is a Read or a Write. Through a qualified access such as obj.prop the whole
// chain is classified, so obj.prop = v writes obj. Anything the oracle cannot
// decide is a read.
func (c Classifier) Classify(ref model.Reference) (model.NodeID, model.Access) {
	target := TopmostQualified(c.Tree, ref.Node)
	if c.Oracle.Access(target) == model.Write {
		return target, model.Write
	}
	return target, model.Read
}
