package inspect

import (
	"sort"

	"github.com/phobologic/frozenguard/internal/model"
)

// ExplicitFreezeScanner reports writes to a val/var binding that happen after
// the binding was passed through freeze().
type ExplicitFreezeScanner struct {
	Tree   Tree
	Refs   ReferenceSearcher
	Oracle AccessOracle
}

// Scan returns the violations for decl in source order.
func (s *ExplicitFreezeScanner) Scan(decl *model.Declaration) []model.Violation {
	if decl == nil || decl.Binding == "" {
		return nil
	}

	refs := s.Refs.FindReferences(decl)
	if len(refs) == 0 {
		return nil
	}
	sorted := make([]model.Reference, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.Less(sorted[j].Pos)
	})

	fp, ok := Locator{Tree: s.Tree}.Locate(sorted)
	if !ok {
		return nil
	}

	classifier := Classifier{Tree: s.Tree, Oracle: s.Oracle}
	var out []model.Violation
	for _, ref := range sorted[fp.Index+1:] {
		target, access := classifier.Classify(ref)
		if access != model.Write {
			continue
		}
		highlight, _ := EnclosingOperation(s.Tree, target)
		out = append(out, model.Violation{
			Span:          s.Tree.Span(highlight),
			Node:          highlight,
			Inspection:    model.ExplicitlyFrozenObjects,
			Message:       model.MsgExplicitlyFrozen,
			Severity:      model.GenericWarning,
			SuppressionID: model.ExplicitlyFrozenObjects,
			Declaration:   decl.Name,
		})
	}
	return out
}
