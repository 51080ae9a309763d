// Package search runs a dot-notation query against a JSON document and
// returns positioned matches.
//
// The pipeline is parse, match, locate. Each call works on its own snapshot
// of the document text, so a Searcher may be shared between goroutines.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jacoelho/jsondot/internal/diagnostics"
	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/dotpath"
	"github.com/jacoelho/jsondot/internal/locate"
	"github.com/jacoelho/jsondot/internal/matcher"
)

var (
	ErrNoDocument      = errors.New("no active document")
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrInvalidJSON     = errors.New("invalid JSON")
)

// DefaultLanguages is the language allow-list used when none is configured.
var DefaultLanguages = []string{LanguageJSON, LanguageJSONC}

// Document is the text being searched, tagged with its language id.
type Document struct {
	URI        string
	LanguageID string
	Text       string
}

// Options configure a Searcher.
type Options struct {
	// Languages lists accepted language ids. Empty means DefaultLanguages.
	Languages []string
	// Strict uses parser-recorded key positions instead of re-scanning text.
	Strict bool
	Logger *slog.Logger
}

type Searcher struct {
	languages []string
	strict    bool
	log       *slog.Logger
}

func New(opts Options) *Searcher {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Searcher{
		languages: slices.Clone(languages),
		strict:    opts.Strict,
		log:       log,
	}
}

// Supports reports whether languageID is on the allow-list.
func (s *Searcher) Supports(languageID string) bool {
	return slices.Contains(s.languages, languageID)
}

// Search answers query against doc. Errors wrap ErrNoDocument,
// ErrUnsupportedType or ErrInvalidJSON. Matches whose position cannot be
// recovered are left out of the result and reported as issues.
func (s *Searcher) Search(doc *Document, query string) (*Result, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if !s.Supports(doc.LanguageID) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, doc.LanguageID)
	}

	root, err := parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	path := dotpath.Split(query)
	candidates := matcher.Find(root, path)

	var locator locate.Locator = locate.Exact{}
	if !s.strict {
		locator = locate.NewHeuristic(doc.Text)
	}

	result := &Result{
		Query:   query,
		Matches: make([]Match, 0, len(candidates)),
	}
	for _, c := range candidates {
		pos, ok := locator.Locate(c)
		if !ok {
			s.log.Debug("match dropped, position not recovered", "path", c.Path.String(), "uri", doc.URI)
			result.Issues = append(result.Issues, diagnostics.New(
				diagnostics.CodeLocatorMiss,
				c.Path.String(),
				"key found in the parsed document but not in the source text",
			))
			continue
		}
		result.Matches = append(result.Matches, Match{
			Path:    c.Path.String(),
			LeafKey: c.Path.Last(),
			Value:   c.Value,
			Line:    pos.Line,
			Column:  pos.Column,
		})
	}

	s.log.Debug("search completed",
		"uri", doc.URI,
		"query", query,
		"candidates", len(candidates),
		"matches", len(result.Matches),
		"strict", s.strict,
	)

	return result, nil
}

func parse(doc *Document) (document.Value, error) {
	if doc.LanguageID == LanguageJSONC {
		return document.ParseJSONC(doc.Text)
	}
	return document.Parse(doc.Text)
}
