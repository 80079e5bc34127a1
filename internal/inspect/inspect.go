// Package inspect implements the frozen-object mutation analyses.
//
// The package is independent of any parser. It consumes a syntax tree through
// the Tree interface, finds uses of a declaration through ReferenceSearcher,
// and classifies them through AccessOracle. Results go to a Sink. Each call
// works on a fresh reference set and keeps no state between calls.
package inspect

import "github.com/phobologic/frozenguard/internal/model"

// maxAscent bounds every upward walk over the parent relation.
const maxAscent = 1 << 12

// Tree exposes the parent-of relation and the few syntactic predicates the
// analyses need.
type Tree interface {
	// Parent returns the parent of id, or false at the root.
	Parent(id model.NodeID) (model.NodeID, bool)
	// IsQualifiedAccess reports whether id is a dot-qualified expression
	// such as obj.prop or obj.call().
	IsQualifiedAccess(id model.NodeID) bool
	// IsBoundary reports whether id ends a qualified-access chain
	// (argument lists, lambdas, blocks).
	IsBoundary(id model.NodeID) bool
	// IsOperation reports whether id is an operation expression
	// (assignment, unary or binary operator).
	IsOperation(id model.NodeID) bool
	// CallName returns the unqualified callee name when id is a qualified
	// access whose selector is a call, and "" otherwise.
	CallName(id model.NodeID) string
	// Span returns the source region of id.
	Span(id model.NodeID) model.Span
}

// ReferenceSearcher finds every reference to a declaration in its use scope.
type ReferenceSearcher interface {
	FindReferences(decl *model.Declaration) []model.Reference
}

// AccessOracle decides whether an expression is read or written.
type AccessOracle interface {
	Access(id model.NodeID) model.Access
}

// Environment tells whether singletons freeze at construction.
type Environment interface {
	FreezesSingletons(decl *model.Declaration) bool
}

// Sink receives reported violations.
type Sink interface {
	Emit(v model.Violation)
}

// EnvironmentFunc adapts a function to Environment.
type EnvironmentFunc func(decl *model.Declaration) bool

func (f EnvironmentFunc) FreezesSingletons(decl *model.Declaration) bool { return f(decl) }

// AlwaysFrozen is the default environment: every singleton is frozen.
var AlwaysFrozen = EnvironmentFunc(func(*model.Declaration) bool { return true })

// SinkFunc adapts a function to Sink.
type SinkFunc func(v model.Violation)

func (f SinkFunc) Emit(v model.Violation) { f(v) }

// TopmostQualified walks up from id through the enclosing qualified-access
// chain and returns its outermost qualified expression, or id itself when
// id is not part of one. The walk stops at the first boundary.
func TopmostQualified(t Tree, id model.NodeID) model.NodeID {
	top := id
	cur := id
	for range maxAscent {
		p, ok := t.Parent(cur)
		if !ok || t.IsBoundary(p) {
			break
		}
		if t.IsQualifiedAccess(p) {
			top = p
		}
		cur = p
	}
	return top
}

// EnclosingOperation returns the nearest strict ancestor of id that is an
// operation expression. It returns id and false when there is none.
func EnclosingOperation(t Tree, id model.NodeID) (model.NodeID, bool) {
	cur := id
	for range maxAscent {
		p, ok := t.Parent(cur)
		if !ok {
			break
		}
		if t.IsOperation(p) {
			return p, true
		}
		cur = p
	}
	return id, false
}
