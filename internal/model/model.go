// Package model defines core data structures for frozenguard.
package model

import "fmt"

// NodeID identifies a syntax node within one analysis pass.
// File is the index of the file in discovery order, Node the preorder index
// of the node inside that file's tree.
type NodeID struct {
	File int
	Node int
}

// Position orders references: by file first, then by byte offset.
type Position struct {
	File   int
	Offset int
}

// Less reports whether p sorts before q.
func (p Position) Less(q Position) bool {
	if p.File != q.File {
		return p.File < q.File
	}
	return p.Offset < q.Offset
}

// Span is a highlighted source region. Lines and columns are 1-based.
type Span struct {
	File      string `json:"file"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Access is the result of classifying a reference.
type Access uint8

const (
	Unknown Access = iota
	Read
	Write
)

func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return "unknown"
}

// DeclKind indicates the syntactic kind of a declaration.
type DeclKind string

const (
	Local     DeclKind = "local"
	Property  DeclKind = "property"
	Parameter DeclKind = "parameter"
	Object    DeclKind = "object"
)

// Declaration is a named binding found in the source.
type Declaration struct {
	Name string
	Kind DeclKind
	// Binding is "val", "var" or "" for declarations without a binding keyword.
	Binding     string
	Mutable     bool
	Annotations []string
	Span        Span
	Node        NodeID

	// Scope is the node whose subtree holds every use of the declaration,
	// ignored when ProjectWide is set.
	Scope       NodeID
	ProjectWide bool
	// Qualifiers are receiver names that reach this declaration as Q.name
	// from outside its scope (object and companion members).
	Qualifiers []string

	Members []*Declaration
}

// HasAnnotation reports whether the declaration carries an annotation with
// the given short name. Matching is exact and case-sensitive.
func (d *Declaration) HasAnnotation(name string) bool {
	for _, a := range d.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// Reference is one occurrence of a declaration's name.
type Reference struct {
	Node NodeID
	Pos  Position
	Span Span
}

// Severity of a reported violation.
type Severity string

// GenericWarning is the only severity frozenguard emits.
const GenericWarning Severity = "warning"

// Inspection identifiers, also used as suppression IDs.
const (
	ExplicitlyFrozenObjects = "ExplicitlyFrozenObjects"
	FrozenSingletonObject   = "FrozenSingletonObject"
)

// Inspections lists every known inspection ID.
var Inspections = []string{ExplicitlyFrozenObjects, FrozenSingletonObject}

// Violation messages.
const (
	MsgExplicitlyFrozen = "object is frozen and cannot be mutated"
	MsgFrozenSingleton  = "objects are frozen by default and its mutation causes exception"
)

// Violation is a single reported frozen-object mutation.
type Violation struct {
	Span          Span     `json:"span" msgpack:"span"`
	Node          NodeID   `json:"-" msgpack:"-"`
	Inspection    string   `json:"inspection" msgpack:"inspection"`
	Message       string   `json:"message" msgpack:"message"`
	Severity      Severity `json:"severity" msgpack:"severity"`
	SuppressionID string   `json:"suppressionId" msgpack:"suppression_id"`
	// Declaration is the name of the frozen binding or singleton member.
	Declaration string `json:"declaration" msgpack:"declaration"`
}

// Report is the complete result of one run, ready for serialization.
type Report struct {
	Root       string      `json:"root"`
	Files      []string    `json:"files"`
	Violations []Violation `json:"violations"`
	Suppressed int         `json:"suppressed"`
	Cached     bool        `json:"cached"`
}
