// Package session drives one interactive search against a host editor:
// prompt for a query, run it, let the user pick a match, then move the caret
// and highlight the matched line until the caret moves away.
//
// All per-search state, including the active highlight and its listener, is
// owned by a Session value. Nothing is kept in package globals.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jacoelho/jsondot/internal/search"
)

const (
	QueryPrompt      = `Enter dot notation path (e.g., "foo.bar")`
	QueryPlaceholder = "foo.bar"
)

// ErrCancelled is returned when the user dismisses the prompt or the picker.
var ErrCancelled = errors.New("search cancelled")

// Config wires a Session to its collaborators.
type Config struct {
	// ID identifies the session in logs. Zero means a new random id.
	ID       uuid.UUID
	Searcher *search.Searcher
	Host     Host
	Log      *slog.Logger
}

type Session struct {
	ID uuid.UUID

	searcher *search.Searcher
	host     Host
	log      *slog.Logger

	mu      sync.Mutex
	current *highlight
}

func New(cfg Config) *Session {
	id := cfg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	searcher := cfg.Searcher
	if searcher == nil {
		searcher = search.New(search.Options{Logger: log})
	}

	return &Session{
		ID:       id,
		searcher: searcher,
		host:     cfg.Host,
		log:      log.With("session", id.String()),
	}
}

// Run prompts for a query and then behaves like Query. Cancelling the prompt
// returns ErrCancelled and leaves the editor untouched.
func (s *Session) Run(ctx context.Context, doc *search.Document) (*search.Result, error) {
	query, ok, err := s.host.Prompt(ctx, PromptRequest{
		Prompt:      QueryPrompt,
		Placeholder: QueryPlaceholder,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	if !ok || query == "" {
		s.log.Debug("prompt cancelled")
		return nil, ErrCancelled
	}

	return s.Query(ctx, doc, query)
}

// Query searches doc and presents the outcome. Failures are reported to the
// host and returned. With several matches the host picker decides which one
// is shown; cancelling it returns ErrCancelled.
func (s *Session) Query(ctx context.Context, doc *search.Document, query string) (*search.Result, error) {
	s.releaseCurrent()

	result, err := s.searcher.Search(doc, query)
	if err != nil {
		s.log.Debug("search failed", "query", query, "error", err)
		s.host.Error(err.Error())
		return nil, err
	}

	switch result.Outcome() {
	case search.OutcomeNone:
		s.host.Info(search.NoMatchesMessage(query))
		return result, nil
	case search.OutcomeSingle:
		s.show(result.Matches[0])
		return result, nil
	}

	items := make([]PickItem, len(result.Matches))
	for i, m := range result.Matches {
		items[i] = PickItem{Label: m.Label(), Description: m.Description()}
	}

	placeholder := fmt.Sprintf("Found %d matches for %q. Select one to navigate:", len(result.Matches), query)
	index, ok, err := s.host.Pick(ctx, placeholder, items)
	if err != nil {
		return result, fmt.Errorf("pick: %w", err)
	}
	if !ok {
		s.log.Debug("picker cancelled", "query", query)
		return result, ErrCancelled
	}
	if index < 0 || index >= len(result.Matches) {
		return result, fmt.Errorf("pick: index %d out of range [0,%d)", index, len(result.Matches))
	}

	s.show(result.Matches[index])
	return result, nil
}

// Highlighted reports whether a highlight from this session is still shown.
func (s *Session) Highlighted() bool {
	s.mu.Lock()
	h := s.current
	s.mu.Unlock()
	return h != nil && h.active()
}

// Close removes any highlight and listener owned by the session.
func (s *Session) Close() {
	s.releaseCurrent()
}

func (s *Session) show(m search.Match) {
	s.releaseCurrent()

	s.log.Debug("navigating", "path", m.Path, "position", m.Position().String())
	h := showHighlight(s.host, m.Position())

	s.mu.Lock()
	s.current = h
	s.mu.Unlock()
}

func (s *Session) releaseCurrent() {
	s.mu.Lock()
	h := s.current
	s.current = nil
	s.mu.Unlock()

	if h != nil {
		h.release()
	}
}
