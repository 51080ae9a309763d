// Package lsp renders matches as Language Server Protocol locations, one
// JSON array per summary, for editors and tools that consume LSP types.
package lsp

import (
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/jacoelho/jsondot/internal/config"
	"github.com/jacoelho/jsondot/internal/formatter"
	"github.com/jacoelho/jsondot/internal/results"
	"github.com/jacoelho/jsondot/internal/search"
)

// StdinURI identifies a document read from standard input.
const StdinURI = protocol.DocumentURI("untitled:stdin")

type Formatter struct {
	writer io.Writer
}

func New() formatter.Formatter {
	return &Formatter{writer: os.Stdout}
}

func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{writer: writer}
}

func (f *Formatter) Format(summaries ...*results.Summary) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")

	for _, s := range summaries {
		docURI, err := DocumentURI(s.File)
		if err != nil {
			return err
		}
		if err := enc.Encode(Locations(docURI, s.Matches)); err != nil {
			return err
		}
	}
	return nil
}

// DocumentURI converts a file argument into a file URI.
func DocumentURI(file string) (protocol.DocumentURI, error) {
	if file == config.StdinFile {
		return StdinURI, nil
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	return protocol.DocumentURI(uri.File(abs)), nil
}

// Locations spans the quoted key of every match. Characters count code points.
func Locations(docURI protocol.DocumentURI, matches []search.Match) []protocol.Location {
	locations := make([]protocol.Location, 0, len(matches))
	for _, m := range matches {
		width := utf8.RuneCountInString(m.LeafKey) + 2
		locations = append(locations, protocol.Location{
			URI: docURI,
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(m.Line),
					Character: uint32(m.Column),
				},
				End: protocol.Position{
					Line:      uint32(m.Line),
					Character: uint32(m.Column + width),
				},
			},
		})
	}
	return locations
}
