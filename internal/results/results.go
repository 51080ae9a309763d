package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jsondot/internal/diagnostics"
	"github.com/jacoelho/jsondot/internal/search"
)

// Summary describes one search run over one document.
type Summary struct {
	SessionID uuid.UUID
	Run       int // 1-based watch iteration, 0 outside watch mode
	File      string
	Language  string
	Query     string
	Strict    bool
	Matches   []search.Match
	Issues    []diagnostics.Issue
	Duration  time.Duration
}

func (s *Summary) Outcome() search.Outcome {
	r := search.Result{Matches: s.Matches}
	return r.Outcome()
}

// Dropped counts matches whose position could not be recovered.
func (s *Summary) Dropped() int {
	return diagnostics.CountByCode(s.Issues)[diagnostics.CodeLocatorMiss]
}

type SummaryBuilder struct {
	sessionID uuid.UUID
	run       int
	file      string
	language  string
	strict    bool
	result    *search.Result
	query     string
	duration  time.Duration
}

func NewSummaryBuilder(file, query string) *SummaryBuilder {
	return &SummaryBuilder{
		file:  file,
		query: query,
	}
}

func (b *SummaryBuilder) WithSession(id uuid.UUID) *SummaryBuilder {
	b.sessionID = id
	return b
}

func (b *SummaryBuilder) WithRun(run int) *SummaryBuilder {
	b.run = run
	return b
}

func (b *SummaryBuilder) WithLanguage(language string) *SummaryBuilder {
	b.language = language
	return b
}

func (b *SummaryBuilder) WithStrict(strict bool) *SummaryBuilder {
	b.strict = strict
	return b
}

func (b *SummaryBuilder) WithResult(result *search.Result) *SummaryBuilder {
	b.result = result
	return b
}

func (b *SummaryBuilder) WithDuration(duration time.Duration) *SummaryBuilder {
	b.duration = duration
	return b
}

func (b *SummaryBuilder) Build() *Summary {
	s := &Summary{
		SessionID: b.sessionID,
		Run:       b.run,
		File:      b.file,
		Language:  b.language,
		Query:     b.query,
		Strict:    b.strict,
		Duration:  b.duration,
	}
	if b.result != nil {
		s.Matches = b.result.Matches
		s.Issues = b.result.Issues
	}
	return s
}
