package search

import (
	"fmt"

	"github.com/jacoelho/jsondot/internal/diagnostics"
	"github.com/jacoelho/jsondot/internal/document"
)

// Outcome classifies how many matches a search produced.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeSingle
	OutcomeMultiple
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSingle:
		return "single"
	case OutcomeMultiple:
		return "multiple"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Match is a located result. Line and Column are zero-based.
type Match struct {
	Path    string
	LeafKey string
	Value   document.Value
	Line    int
	Column  int
}

func (m Match) Position() document.Position {
	return document.Position{Line: m.Line, Column: m.Column}
}

// Label is the picker caption, e.g. "Line 3: a.b".
func (m Match) Label() string {
	return fmt.Sprintf("Line %d: %s", m.Line+1, m.Path)
}

// Description renders the matched value as compact JSON.
func (m Match) Description() string {
	return document.Compact(m.Value)
}

// Result holds the ordered matches of one search.
type Result struct {
	Query   string
	Matches []Match
	Issues  []diagnostics.Issue
}

func (r *Result) Outcome() Outcome {
	switch len(r.Matches) {
	case 0:
		return OutcomeNone
	case 1:
		return OutcomeSingle
	default:
		return OutcomeMultiple
	}
}

// NoMatchesMessage is the informational text shown for an empty result.
func NoMatchesMessage(query string) string {
	return fmt.Sprintf("No matches found for %q", query)
}
