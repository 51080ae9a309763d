// Package matcher finds every object member whose key path ends with a query.
//
// Traversal is depth-first pre-order. Arrays are transparent: their elements
// inherit the path of the array itself, so array indices never appear in a
// path and cannot be queried.
package matcher

import (
	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/dotpath"
	"github.com/jacoelho/jsondot/internal/stack"
)

// Candidate is a structural match that has not been placed in the text yet.
type Candidate struct {
	Path  dotpath.Path
	Value document.Value
	// KeyPos is the parser-recorded position of the member key.
	KeyPos document.Position
}

type walker struct {
	query dotpath.Path
	path  *stack.Stack[string]
	out   []Candidate
}

// Find returns candidates in pre-order, siblings in insertion order.
// A scalar root or an empty query yields no candidates.
func Find(root document.Value, query dotpath.Path) []Candidate {
	if len(query) == 0 {
		return nil
	}

	w := &walker{
		query: query,
		path:  stack.NewWithCapacity[string](8),
	}
	w.walk(root)
	return w.out
}

func (w *walker) walk(v document.Value) {
	switch node := v.(type) {
	case *document.Object:
		for _, m := range node.Members() {
			w.path.Push(m.Key)
			if path := dotpath.Path(w.path.Snapshot()); path.HasSuffix(w.query) {
				w.out = append(w.out, Candidate{
					Path:   path,
					Value:  m.Value,
					KeyPos: m.Pos,
				})
			}
			if document.IsContainer(m.Value) {
				w.walk(m.Value)
			}
			w.path.Pop()
		}
	case document.Array:
		for _, el := range node {
			w.walk(el)
		}
	case document.Null, document.Bool, document.Number, document.String:
	}
}
