package inspect

import "github.com/phobologic/frozenguard/internal/model"

// ThreadLocalAnnotation exempts a singleton from implicit freezing.
const ThreadLocalAnnotation = "ThreadLocal"

// SingletonScanner reports writes to mutable members of singleton objects,
// which Kotlin/Native freezes at construction unless marked @ThreadLocal.
type SingletonScanner struct {
	Tree   Tree
	Refs   ReferenceSearcher
	Oracle AccessOracle
	// Env defaults to AlwaysFrozen when nil.
	Env Environment
}

// Scan returns the violations for the singleton decl, member by member.
func (s *SingletonScanner) Scan(decl *model.Declaration) []model.Violation {
	if decl == nil || decl.Kind != model.Object {
		return nil
	}
	env := s.Env
	if env == nil {
		env = AlwaysFrozen
	}
	if !env.FreezesSingletons(decl) {
		return nil
	}
	if decl.HasAnnotation(ThreadLocalAnnotation) {
		return nil
	}

	classifier := Classifier{Tree: s.Tree, Oracle: s.Oracle}
	var out []model.Violation
	for _, member := range decl.Members {
		if !member.Mutable {
			continue
		}
		for _, ref := range s.Refs.FindReferences(member) {
			target, access := classifier.Classify(ref)
			if access != model.Write {
				continue
			}
			highlight, _ := EnclosingOperation(s.Tree, target)
			out = append(out, model.Violation{
				Span:          s.Tree.Span(highlight),
				Node:          highlight,
				Inspection:    model.FrozenSingletonObject,
				Message:       model.MsgFrozenSingleton,
				Severity:      model.GenericWarning,
				SuppressionID: model.FrozenSingletonObject,
				Declaration:   decl.Name + "." + member.Name,
			})
		}
	}
	return out
}
