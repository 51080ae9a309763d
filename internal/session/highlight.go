package session

import (
	"sync"

	"github.com/jacoelho/jsondot/internal/document"
)

// highlight owns one decorated line and the listener that removes it.
type highlight struct {
	editor Editor
	target document.Position

	mu   sync.Mutex
	sub  Subscription
	done bool
}

func showHighlight(editor Editor, target document.Position) *highlight {
	h := &highlight{editor: editor, target: target}

	editor.MoveCaret(target)
	editor.Highlight(Range{
		Start: document.Position{Line: target.Line},
		End:   document.Position{Line: target.Line, Column: editor.LineLength(target.Line)},
	})

	// Subscribe after the caret move so it does not count as leaving.
	sub := editor.OnSelectionChange(h.onSelectionChange)

	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		sub.Unsubscribe()
		return h
	}
	h.sub = sub
	h.mu.Unlock()

	return h
}

func (h *highlight) onSelectionChange(pos document.Position) {
	if pos == h.target {
		return
	}
	h.release()
}

// release clears the decoration and drops the listener. Safe to call more
// than once and from the listener itself.
func (h *highlight) release() {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.done = true
	sub := h.sub
	h.sub = nil
	h.mu.Unlock()

	h.editor.ClearHighlight()
	if sub != nil {
		sub.Unsubscribe()
	}
}

func (h *highlight) active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.done
}
