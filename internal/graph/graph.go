// Package graph indexes identifier occurrences across all files of a project.
package graph

import (
	"sort"

	"github.com/phobologic/frozenguard/internal/syntax"
)

// Occurrence is one identifier node in one file.
type Occurrence struct {
	File int
	Node int
}

// Index maps identifier text to its occurrences, ordered by file and then
// by source position.
type Index struct {
	byName map[string][]Occurrence
}

// BuildIndex collects every node of the given kind in trees. The file index
// of an occurrence is the tree's position in trees.
func BuildIndex(trees []*syntax.Tree, kind string) *Index {
	idx := &Index{byName: make(map[string][]Occurrence)}
	for f, tree := range trees {
		if tree == nil {
			continue
		}
		tree.Walk(func(i int) bool {
			if tree.Nodes[i].Kind == kind {
				name := tree.Text(i)
				idx.byName[name] = append(idx.byName[name], Occurrence{File: f, Node: i})
			}
			return true
		})
	}
	return idx
}

// Lookup returns the occurrences of name. The slice must not be modified.
func (idx *Index) Lookup(name string) []Occurrence {
	if idx == nil {
		return nil
	}
	return idx.byName[name]
}

// InFile returns the occurrences of name within file.
func (idx *Index) InFile(name string, file int) []Occurrence {
	all := idx.Lookup(name)
	lo := sort.Search(len(all), func(i int) bool { return all[i].File >= file })
	hi := sort.Search(len(all), func(i int) bool { return all[i].File > file })
	return all[lo:hi]
}

// Names returns every indexed name in sorted order.
func (idx *Index) Names() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.byName))
	for k := range idx.byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
