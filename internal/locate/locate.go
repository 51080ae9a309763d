// Package locate recovers the source position of a matched key.
package locate

import (
	"regexp"
	"strings"

	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/dotpath"
	"github.com/jacoelho/jsondot/internal/matcher"
)

// MaxAncestorLines caps how many ancestor lines the heuristic requires.
const MaxAncestorLines = 3

// Locator places a candidate in the source text.
type Locator interface {
	Locate(c matcher.Candidate) (document.Position, bool)
}

// Heuristic re-scans the original text for the quoted key followed by a
// colon and accepts the first occurrence whose preceding lines mention enough
// ancestor keys. It is best-effort: sibling structures that reuse key names
// can fool it, and a one-segment path always resolves to the first occurrence.
type Heuristic struct {
	lines    []string
	patterns map[string]*regexp.Regexp
}

// NewHeuristic snapshots text. The returned locator is not safe for
// concurrent use.
func NewHeuristic(text string) *Heuristic {
	return &Heuristic{
		lines:    document.Lines(text),
		patterns: make(map[string]*regexp.Regexp),
	}
}

func (h *Heuristic) Locate(c matcher.Candidate) (document.Position, bool) {
	return h.LocatePath(c.Path)
}

// LocatePath finds the first plausible line for path.
func (h *Heuristic) LocatePath(path dotpath.Path) (document.Position, bool) {
	if len(path) == 0 {
		return document.Position{}, false
	}

	pattern := h.keyPattern(path.Last())
	for i, line := range h.lines {
		loc := pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if h.ancestorsPlausible(i, path) {
			return document.Position{Line: i, Column: document.ColumnAt(line, loc[0])}, true
		}
	}

	return document.Position{}, false
}

// ancestorsPlausible counts the lines above lineIndex that mention any parent
// key in quotes. Which parent matched and in what order is not checked.
func (h *Heuristic) ancestorsPlausible(lineIndex int, path dotpath.Path) bool {
	if len(path) <= 1 {
		return true
	}

	parents := path.Parents()
	quoted := make([]string, len(parents))
	for i, p := range parents {
		quoted[i] = `"` + p + `"`
	}

	found := 0
	for i := lineIndex - 1; i >= 0 && found < len(parents); i-- {
		for _, q := range quoted {
			if strings.Contains(h.lines[i], q) {
				found++
				break
			}
		}
	}

	return found >= min(MaxAncestorLines, len(parents))
}

func (h *Heuristic) keyPattern(key string) *regexp.Regexp {
	if re, ok := h.patterns[key]; ok {
		return re
	}
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:`)
	h.patterns[key] = re
	return re
}

// Exact trusts the key positions recorded by the parser. Duplicate key names
// resolve to their own occurrence instead of the first plausible one.
type Exact struct{}

func (Exact) Locate(c matcher.Candidate) (document.Position, bool) {
	if len(c.Path) == 0 {
		return document.Position{}, false
	}
	return c.KeyPos, true
}
