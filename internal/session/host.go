package session

import (
	"context"

	"github.com/jacoelho/jsondot/internal/document"
)

// Range is a span of text between two positions.
type Range struct {
	Start document.Position
	End   document.Position
}

// Subscription is a handle to a registered listener.
type Subscription interface {
	Unsubscribe()
}

// Editor is the text host that shows the document.
type Editor interface {
	// MoveCaret places the caret at pos and scrolls it into view.
	MoveCaret(pos document.Position)
	// LineLength returns the length of line in code points.
	LineLength(line int) int
	Highlight(r Range)
	ClearHighlight()
	// OnSelectionChange registers fn for caret moves until unsubscribed.
	OnSelectionChange(fn func(document.Position)) Subscription
}

// PromptRequest describes the query input box.
type PromptRequest struct {
	Prompt      string
	Placeholder string
}

// Prompter asks the user for a query. ok is false when the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (query string, ok bool, err error)
}

// PickItem is one entry of the match picker.
type PickItem struct {
	Label       string
	Description string
}

// Picker asks the user to choose one item. ok is false when the user cancelled.
type Picker interface {
	Pick(ctx context.Context, placeholder string, items []PickItem) (index int, ok bool, err error)
}

// Notifier shows one-line messages.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Host bundles every collaborator a session needs.
type Host interface {
	Editor
	Prompter
	Picker
	Notifier
}
