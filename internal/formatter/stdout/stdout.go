package stdout

import (
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jsondot/internal/formatter"
	"github.com/jacoelho/jsondot/internal/results"
	"github.com/jacoelho/jsondot/internal/search"
)

// Formatter writes one line per match in file:line:column form.
type Formatter struct {
	writer io.Writer
}

// New creates a new stdout formatter that outputs to stdout.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stdout,
	}
}

// NewWithWriter creates a new stdout formatter with a custom writer.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

func (f *Formatter) Format(summaries ...*results.Summary) error {
	for _, s := range summaries {
		if err := f.formatSummary(s); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) formatSummary(s *results.Summary) error {
	if err := f.printHeader(s); err != nil {
		return err
	}

	for _, m := range s.Matches {
		_, err := fmt.Fprintf(f.writer, "%s:%d:%d: %s = %s\n",
			s.File, m.Line+1, m.Column+1, m.Path, m.Description())
		if err != nil {
			return err
		}
	}

	if dropped := s.Dropped(); dropped > 0 {
		if _, err := fmt.Fprintf(f.writer, "%s: %d match(es) dropped, position not recovered\n", s.File, dropped); err != nil {
			return err
		}
	}

	return nil
}

func (f *Formatter) printHeader(s *results.Summary) error {
	var run string
	if s.Run > 0 {
		run = fmt.Sprintf("run %d, ", s.Run)
	}

	if s.Outcome() == search.OutcomeNone {
		_, err := fmt.Fprintf(f.writer, "%s: %s (%s%d ms)\n",
			s.File, search.NoMatchesMessage(s.Query), run, s.Duration.Milliseconds())
		return err
	}

	_, err := fmt.Fprintf(f.writer, "%s: %d match(es) for %q (%s%d ms)\n",
		s.File, len(s.Matches), s.Query, run, s.Duration.Milliseconds())
	return err
}
