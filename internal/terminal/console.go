// Package terminal hosts an interactive search session on a text terminal.
// The console prints the highlighted line instead of decorating an editor
// buffer, and reads queries and picker choices from its input.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/session"
)

// Options configure a Console.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Err   io.Writer
	Color ColorMode
}

// Console implements session.Host.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	colors palette

	mu          sync.Mutex
	lines       []string
	caret       document.Position
	highlighted *session.Range
	listeners   map[int]func(document.Position)
	nextID      int
}

var _ session.Host = (*Console)(nil)

func New(opts Options) *Console {
	errOut := opts.Err
	if errOut == nil {
		errOut = opts.Out
	}
	return &Console{
		in:        bufio.NewReader(opts.In),
		out:       opts.Out,
		errOut:    errOut,
		colors:    newPalette(opts.Color.Enabled(opts.Out)),
		listeners: make(map[int]func(document.Position)),
	}
}

// Open loads the document text shown by the console.
func (c *Console) Open(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = document.Lines(text)
	c.caret = document.Position{}
	c.highlighted = nil
}

// Caret returns the last caret position.
func (c *Console) Caret() document.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caret
}

// Highlighted returns the highlighted range, if any.
func (c *Console) Highlighted() (session.Range, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.highlighted == nil {
		return session.Range{}, false
	}
	return *c.highlighted, true
}

func (c *Console) MoveCaret(pos document.Position) {
	c.mu.Lock()
	c.caret = pos
	listeners := make([]func(document.Position), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(pos)
	}
}

func (c *Console) LineLength(line int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if line < 0 || line >= len(c.lines) {
		return 0
	}
	return utf8.RuneCountInString(strings.TrimSuffix(c.lines[line], "\r"))
}

func (c *Console) Highlight(r session.Range) {
	c.mu.Lock()
	c.highlighted = &r
	caret := c.caret
	var text string
	if r.Start.Line >= 0 && r.Start.Line < len(c.lines) {
		text = strings.TrimSuffix(c.lines[r.Start.Line], "\r")
	}
	c.mu.Unlock()

	before, marked, after := splitColumns(text, r.Start.Column, r.End.Column)
	gutter := fmt.Sprintf("%5d | ", r.Start.Line+1)

	fmt.Fprintf(c.out, "%s%s%s%s\n", c.colors.gutter.Sprint(gutter), before, c.colors.highlight.Sprint(marked), after)
	if caret.Line == r.Start.Line {
		pad := strings.Repeat(" ", caret.Column)
		fmt.Fprintf(c.out, "%s%s%s\n", c.colors.gutter.Sprint("      | "), pad, c.colors.caret.Sprint("^"))
	}
}

func (c *Console) ClearHighlight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.highlighted = nil
}

func (c *Console) OnSelectionChange(fn func(document.Position)) session.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return &subscription{console: c, id: id}
}

type subscription struct {
	console *Console
	id      int
}

func (s *subscription) Unsubscribe() {
	s.console.mu.Lock()
	defer s.console.mu.Unlock()
	delete(s.console.listeners, s.id)
}

func (c *Console) Prompt(ctx context.Context, req session.PromptRequest) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	fmt.Fprintf(c.out, "%s %s: ", req.Prompt, c.colors.faint.Sprintf("[%s]", req.Placeholder))
	line, ok, err := c.readLine(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	return line, line != "", nil
}

func (c *Console) Pick(ctx context.Context, placeholder string, items []session.PickItem) (int, bool, error) {
	fmt.Fprintln(c.out, placeholder)
	for i, item := range items {
		fmt.Fprintf(c.out, "  %2d) %s  %s\n", i+1, item.Label, c.colors.faint.Sprint(item.Description))
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		fmt.Fprintf(c.out, "Select [1-%d]: ", len(items))
		line, ok, err := c.readLine(ctx)
		if err != nil || !ok || line == "" {
			return 0, false, err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(items) {
			return n - 1, true, nil
		}
		c.Error(fmt.Sprintf("invalid selection %q", line))
	}
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.colors.info.Sprint(msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.errOut, c.colors.err.Sprint(msg))
}

type readResult struct {
	line string
	err  error
}

// readLine returns ok=false at end of input with nothing read. A read still
// pending when ctx is done is abandoned.
func (c *Console) readLine(ctx context.Context) (string, bool, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res = <-ch:
	}

	if res.err != nil {
		if !errors.Is(res.err, io.EOF) {
			return "", false, res.err
		}
		if res.line == "" {
			return "", false, nil
		}
	}
	return strings.TrimRight(res.line, "\r\n"), true, nil
}

// splitColumns cuts text at two code point columns.
func splitColumns(text string, start, end int) (string, string, string) {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, start, len(runes))
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
