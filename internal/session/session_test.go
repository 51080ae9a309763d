package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/search"
)

const exampleDoc = `{
  "a": {
    "b": 1,
    "c": {
      "b": 2
    }
  }
}`

type fakeHost struct {
	lines []string

	query       string
	queryOK     bool
	pickIndex   int
	pickOK      bool
	prompted    int
	placeholder string
	items       []PickItem

	caret      []document.Position
	highlights []Range
	clears     int
	infos      []string
	errors     []string

	nextID    int
	listeners map[int]func(document.Position)
}

func newFakeHost(text string) *fakeHost {
	return &fakeHost{
		lines:     document.Lines(text),
		queryOK:   true,
		pickOK:    true,
		listeners: make(map[int]func(document.Position)),
	}
}

func (f *fakeHost) MoveCaret(pos document.Position) {
	f.caret = append(f.caret, pos)
	for _, fn := range f.snapshotListeners() {
		fn(pos)
	}
}

func (f *fakeHost) snapshotListeners() []func(document.Position) {
	out := make([]func(document.Position), 0, len(f.listeners))
	for _, fn := range f.listeners {
		out = append(out, fn)
	}
	return out
}

func (f *fakeHost) LineLength(line int) int {
	return utf8.RuneCountInString(f.lines[line])
}

func (f *fakeHost) Highlight(r Range) { f.highlights = append(f.highlights, r) }
func (f *fakeHost) ClearHighlight()   { f.clears++ }
func (f *fakeHost) Info(msg string)   { f.infos = append(f.infos, msg) }
func (f *fakeHost) Error(msg string)  { f.errors = append(f.errors, msg) }

type fakeSubscription struct {
	host *fakeHost
	id   int
}

func (s fakeSubscription) Unsubscribe() { delete(s.host.listeners, s.id) }

func (f *fakeHost) OnSelectionChange(fn func(document.Position)) Subscription {
	f.nextID++
	f.listeners[f.nextID] = fn
	return fakeSubscription{host: f, id: f.nextID}
}

func (f *fakeHost) Prompt(_ context.Context, req PromptRequest) (string, bool, error) {
	f.prompted++
	if req.Prompt != QueryPrompt || req.Placeholder != QueryPlaceholder {
		return "", false, errors.New("unexpected prompt request")
	}
	return f.query, f.queryOK, nil
}

func (f *fakeHost) Pick(_ context.Context, placeholder string, items []PickItem) (int, bool, error) {
	f.placeholder = placeholder
	f.items = items
	return f.pickIndex, f.pickOK, nil
}

func newSession(host *fakeHost) *Session {
	return New(Config{Host: host})
}

func jsonDoc(text string) *search.Document {
	return &search.Document{LanguageID: search.LanguageJSON, Text: text}
}

func TestRunSingleMatchHighlightsLine(t *testing.T) {
	host := newFakeHost(exampleDoc)
	host.query = "c.b"
	s := newSession(host)

	result, err := s.Run(context.Background(), jsonDoc(exampleDoc))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Outcome() != search.OutcomeSingle {
		t.Fatalf("Outcome() = %v, want single", result.Outcome())
	}

	target := document.Position{Line: 4, Column: 6}
	if diff := cmp.Diff([]document.Position{target}, host.caret); diff != "" {
		t.Errorf("caret mismatch (-want +got):\n%s", diff)
	}
	wantRange := Range{Start: document.Position{Line: 4}, End: document.Position{Line: 4, Column: 12}}
	if diff := cmp.Diff([]Range{wantRange}, host.highlights); diff != "" {
		t.Errorf("highlight mismatch (-want +got):\n%s", diff)
	}
	if len(host.listeners) != 1 {
		t.Errorf("listeners = %d, want 1", len(host.listeners))
	}
	if !s.Highlighted() {
		t.Error("Highlighted() = false, want true")
	}
}

func TestHighlightClearedWhenCaretLeavesTarget(t *testing.T) {
	host := newFakeHost(exampleDoc)
	host.query = "c.b"
	s := newSession(host)

	if _, err := s.Run(context.Background(), jsonDoc(exampleDoc)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	host.MoveCaret(document.Position{Line: 4, Column: 6})
	if host.clears != 0 || !s.Highlighted() {
		t.Fatalf("caret on target cleared highlight (clears = %d)", host.clears)
	}

	host.MoveCaret(document.Position{Line: 0, Column: 0})
	if host.clears != 1 {
		t.Errorf("clears = %d, want 1", host.clears)
	}
	if len(host.listeners) != 0 {
		t.Errorf("listeners = %d, want 0 after first move away", len(host.listeners))
	}
	if s.Highlighted() {
		t.Error("Highlighted() = true after move away")
	}

	host.MoveCaret(document.Position{Line: 1, Column: 0})
	s.Close()
	if host.clears != 1 {
		t.Errorf("clears = %d, want 1 after further moves and Close", host.clears)
	}
}

func TestRunMultipleMatchesUsesPicker(t *testing.T) {
	host := newFakeHost(exampleDoc)
	host.query = "b"
	host.pickIndex = 1
	s := newSession(host)

	if _, err := s.Run(context.Background(), jsonDoc(exampleDoc)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantItems := []PickItem{
		{Label: "Line 3: a.b", Description: "1"},
		{Label: "Line 5: a.c.b", Description: "2"},
	}
	if diff := cmp.Diff(wantItems, host.items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if host.placeholder != `Found 2 matches for "b". Select one to navigate:` {
		t.Errorf("placeholder = %q", host.placeholder)
	}
	if diff := cmp.Diff([]document.Position{{Line: 4, Column: 6}}, host.caret); diff != "" {
		t.Errorf("caret mismatch (-want +got):\n%s", diff)
	}
}

func TestCancellationLeavesEditorUntouched(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		queryOK    bool
		pickOK     bool
		wantPrompt int
	}{
		{name: "prompt_dismissed", query: "b", queryOK: false, pickOK: true, wantPrompt: 1},
		{name: "empty_query", query: "", queryOK: true, pickOK: true, wantPrompt: 1},
		{name: "picker_dismissed", query: "b", queryOK: true, pickOK: false, wantPrompt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(exampleDoc)
			host.query = tt.query
			host.queryOK = tt.queryOK
			host.pickOK = tt.pickOK
			s := newSession(host)

			_, err := s.Run(context.Background(), jsonDoc(exampleDoc))
			if !errors.Is(err, ErrCancelled) {
				t.Fatalf("Run() error = %v, want ErrCancelled", err)
			}
			if host.prompted != tt.wantPrompt {
				t.Errorf("prompted = %d, want %d", host.prompted, tt.wantPrompt)
			}
			if len(host.caret) != 0 || len(host.highlights) != 0 || len(host.listeners) != 0 {
				t.Errorf("editor touched: caret=%v highlights=%v listeners=%d", host.caret, host.highlights, len(host.listeners))
			}
			if len(host.errors) != 0 || len(host.infos) != 0 {
				t.Errorf("messages shown: errors=%v infos=%v", host.errors, host.infos)
			}
		})
	}
}

func TestQueryReportsFailuresAndEmptyResults(t *testing.T) {
	tests := []struct {
		name      string
		doc       *search.Document
		query     string
		wantErr   error
		wantError string
		wantInfo  string
	}{
		{
			name:      "no_document",
			doc:       nil,
			query:     "a",
			wantErr:   search.ErrNoDocument,
			wantError: "no active document",
		},
		{
			name:      "unsupported_type",
			doc:       &search.Document{LanguageID: "markdown", Text: "# a"},
			query:     "a",
			wantErr:   search.ErrUnsupportedType,
			wantError: "unsupported document type: markdown",
		},
		{
			name:      "invalid_json",
			doc:       jsonDoc(`{"a":}`),
			query:     "a",
			wantErr:   search.ErrInvalidJSON,
			wantError: "invalid JSON: ",
		},
		{
			name:     "no_matches",
			doc:      jsonDoc(exampleDoc),
			query:    "z",
			wantInfo: `No matches found for "z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(exampleDoc)
			s := newSession(host)

			_, err := s.Query(context.Background(), tt.doc, tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Query() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantError != "" {
				if len(host.errors) != 1 || !strings.HasPrefix(host.errors[0], tt.wantError) {
					t.Errorf("errors = %v, want one starting with %q", host.errors, tt.wantError)
				}
			}
			if tt.wantInfo != "" {
				if diff := cmp.Diff([]string{tt.wantInfo}, host.infos); diff != "" {
					t.Errorf("infos mismatch (-want +got):\n%s", diff)
				}
			}
			if len(host.highlights) != 0 {
				t.Errorf("highlights = %v, want none", host.highlights)
			}
		})
	}
}

func TestNewSearchReleasesPreviousHighlight(t *testing.T) {
	host := newFakeHost(exampleDoc)
	s := newSession(host)
	ctx := context.Background()

	if _, err := s.Query(ctx, jsonDoc(exampleDoc), "c.b"); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if _, err := s.Query(ctx, jsonDoc(exampleDoc), "z"); err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if host.clears != 1 {
		t.Errorf("clears = %d, want 1", host.clears)
	}
	if len(host.listeners) != 0 {
		t.Errorf("listeners = %d, want 0", len(host.listeners))
	}
	if s.Highlighted() {
		t.Error("Highlighted() = true after new search")
	}
}

func TestNavigatingAgainKeepsSingleListener(t *testing.T) {
	host := newFakeHost(exampleDoc)
	s := newSession(host)
	ctx := context.Background()

	for _, query := range []string{"c.b", "a.b", "c"} {
		if _, err := s.Query(ctx, jsonDoc(exampleDoc), query); err != nil {
			t.Fatalf("Query(%q) error = %v", query, err)
		}
		if len(host.listeners) != 1 {
			t.Fatalf("after %q listeners = %d, want 1", query, len(host.listeners))
		}
	}

	if !s.Highlighted() {
		t.Error("Highlighted() = false, want true")
	}
	if host.clears != 2 {
		t.Errorf("clears = %d, want 2", host.clears)
	}

	s.Close()
	if host.clears != 3 || len(host.listeners) != 0 {
		t.Errorf("after Close clears = %d listeners = %d, want 3 and 0", host.clears, len(host.listeners))
	}
}

func TestQueryRejectsOutOfRangePick(t *testing.T) {
	host := newFakeHost(exampleDoc)
	host.pickIndex = 5
	s := newSession(host)

	_, err := s.Query(context.Background(), jsonDoc(exampleDoc), "b")
	if err == nil || errors.Is(err, ErrCancelled) {
		t.Fatalf("Query() error = %v, want range error", err)
	}
	if len(host.highlights) != 0 {
		t.Errorf("highlights = %v, want none", host.highlights)
	}
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a := newSession(newFakeHost("{}"))
	b := newSession(newFakeHost("{}"))
	if a.ID == b.ID {
		t.Errorf("session IDs collide: %s", a.ID)
	}
}
