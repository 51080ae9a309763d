// Package execute runs jsondot in report, watch or interactive mode.
package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jsondot/internal/config"
	"github.com/jacoelho/jsondot/internal/exit"
	"github.com/jacoelho/jsondot/internal/formatter"
	"github.com/jacoelho/jsondot/internal/formatter/lsp"
	"github.com/jacoelho/jsondot/internal/formatter/stdout"
	"github.com/jacoelho/jsondot/internal/formatter/structured"
	"github.com/jacoelho/jsondot/internal/ratelimit"
	"github.com/jacoelho/jsondot/internal/results"
	"github.com/jacoelho/jsondot/internal/search"
	"github.com/jacoelho/jsondot/internal/session"
	"github.com/jacoelho/jsondot/internal/terminal"
	"github.com/jacoelho/jsondot/internal/watch"
)

type Runner struct {
	config    *config.Config
	sessionID uuid.UUID
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

func New(cfg *config.Config) *Runner {
	return &Runner{
		config:    cfg,
		sessionID: uuid.New(),
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}
}

func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

func (r *Runner) logger() *slog.Logger {
	handler := slog.NewTextHandler(r.errorWriter(), &slog.HandlerOptions{Level: r.config.LogLevel})
	return slog.New(handler).With("file", r.config.File)
}

func (r *Runner) searcher(log *slog.Logger) *search.Searcher {
	return search.New(search.Options{
		Languages: r.config.Languages,
		Strict:    r.config.Strict,
		Logger:    log,
	})
}

func (r *Runner) formatter() formatter.Formatter {
	w := r.payloadWriter()
	switch r.config.Format {
	case config.FormatJSON:
		return structured.NewJSONWithWriter(w)
	case config.FormatYAML:
		return structured.NewYAMLWithWriter(w)
	case config.FormatLSP:
		return lsp.NewWithWriter(w)
	default:
		return stdout.NewWithWriter(w)
	}
}

// language is the explicit --language, else the one implied by the file name.
// Standard input without --language is treated as JSON.
func (r *Runner) language() string {
	if r.config.Language != "" {
		return r.config.Language
	}
	if r.config.Stdin() {
		return search.LanguageJSON
	}
	return search.DetectLanguage(r.config.File)
}

func (r *Runner) document(text string) *search.Document {
	return &search.Document{
		URI:        r.config.File,
		LanguageID: r.language(),
		Text:       text,
	}
}

func (r *Runner) readDocument() (string, error) {
	if r.config.Stdin() {
		data, err := io.ReadAll(r.input)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(r.config.File)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", r.config.File, err)
	}
	return string(data), nil
}

func (r *Runner) Run(ctx context.Context) int {
	switch {
	case r.config.Interactive:
		return r.runInteractive(ctx)
	case r.config.Watch:
		return r.runWatch(ctx)
	default:
		return r.runReport()
	}
}

func (r *Runner) runReport() int {
	log := r.logger()

	text, err := r.readDocument()
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	summary, err := r.search(r.searcher(log), text, 0)
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	if err := r.formatter().Format(summary); err != nil {
		r.logf("Error formatting results: %v\n", err)
		return exit.CodeError
	}

	return outcomeCode(summary.Outcome())
}

func (r *Runner) runWatch(ctx context.Context) int {
	log := r.logger()
	searcher := r.searcher(log)
	out := r.formatter()
	limiter := ratelimit.New(r.config.Rate)

	runs, code := 0, exit.CodeError
	err := watch.New(r.config.File, limiter, log).Run(ctx, func(snap watch.Snapshot) error {
		runs++
		summary, err := r.search(searcher, snap.Text, runs)
		if err != nil {
			r.logf("Error: %v\n", err)
			code = exit.CodeError
			return nil
		}
		code = outcomeCode(summary.Outcome())
		return out.Format(summary)
	})
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	log.Debug("watch stopped", "runs", runs)
	return code
}

func (r *Runner) search(searcher *search.Searcher, text string, run int) (*results.Summary, error) {
	start := time.Now()
	result, err := searcher.Search(r.document(text), r.config.Query)
	if err != nil {
		return nil, err
	}

	return results.NewSummaryBuilder(r.config.File, r.config.Query).
		WithSession(r.sessionID).
		WithRun(run).
		WithLanguage(r.language()).
		WithStrict(r.config.Strict).
		WithResult(result).
		WithDuration(time.Since(start)).
		Build(), nil
}

// runInteractive answers the query argument once when given, otherwise prompts
// until the user cancels. The file is re-read before every search.
func (r *Runner) runInteractive(ctx context.Context) int {
	log := r.logger()
	console := terminal.New(terminal.Options{
		In:    r.input,
		Out:   r.payloadWriter(),
		Err:   r.errorWriter(),
		Color: r.config.Color,
	})
	sess := session.New(session.Config{
		ID:       r.sessionID,
		Searcher: r.searcher(log),
		Host:     console,
		Log:      log,
	})
	defer sess.Close()

	var loaded string
	load := func() (*search.Document, error) {
		text, err := r.readDocument()
		if err != nil {
			return nil, err
		}
		if text != loaded {
			console.Open(text)
			loaded = text
		}
		return r.document(text), nil
	}

	if r.config.Query != "" {
		doc, err := load()
		if err != nil {
			r.logf("Error: %v\n", err)
			return exit.CodeError
		}
		result, err := sess.Query(ctx, doc, r.config.Query)
		return interactiveCode(result, err)
	}

	for {
		doc, err := load()
		if err != nil {
			r.logf("Error: %v\n", err)
			return exit.CodeError
		}

		result, err := sess.Run(ctx, doc)
		switch {
		case errors.Is(err, session.ErrCancelled):
			// a cancelled picker prompts again, a cancelled prompt ends the session
			if result != nil {
				continue
			}
			return exit.CodeMatches
		case errors.Is(err, context.Canceled):
			return exit.CodeMatches
		case err != nil && !isSearchError(err):
			r.logf("Error: %v\n", err)
			return exit.CodeError
		}
	}
}

func interactiveCode(result *search.Result, err error) int {
	switch {
	case errors.Is(err, session.ErrCancelled):
		return exit.CodeNoMatches
	case err != nil:
		return exit.CodeError
	default:
		return outcomeCode(result.Outcome())
	}
}

// isSearchError reports errors the session already showed to the user.
func isSearchError(err error) bool {
	return errors.Is(err, search.ErrNoDocument) ||
		errors.Is(err, search.ErrUnsupportedType) ||
		errors.Is(err, search.ErrInvalidJSON)
}

func outcomeCode(o search.Outcome) int {
	if o == search.OutcomeNone {
		return exit.CodeNoMatches
	}
	return exit.CodeMatches
}
