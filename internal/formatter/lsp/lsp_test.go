package lsp

import (
	"bytes"
	stdjson "encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"

	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/results"
	"github.com/jacoelho/jsondot/internal/search"
)

func TestLocations(t *testing.T) {
	matches := []search.Match{
		{Path: "a.b", LeafKey: "b", Value: document.Number("1"), Line: 2, Column: 4},
		{Path: "x.ключ", LeafKey: "ключ", Value: document.Null{}, Line: 0, Column: 1},
	}

	got := Locations("file:///tmp/doc.json", matches)
	want := []protocol.Location{
		{
			URI: "file:///tmp/doc.json",
			Range: protocol.Range{
				Start: protocol.Position{Line: 2, Character: 4},
				End:   protocol.Position{Line: 2, Character: 7},
			},
		},
		{
			URI: "file:///tmp/doc.json",
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 1},
				End:   protocol.Position{Line: 0, Character: 7},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locations() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentURI(t *testing.T) {
	got, err := DocumentURI("-")
	if err != nil || got != StdinURI {
		t.Errorf("DocumentURI(-) = (%q, %v), want %q", got, err, StdinURI)
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	got, err = DocumentURI(path)
	if err != nil {
		t.Fatalf("DocumentURI() error = %v", err)
	}
	if !strings.HasPrefix(string(got), "file://") || !strings.HasSuffix(string(got), "/doc.json") {
		t.Errorf("DocumentURI(%q) = %q", path, got)
	}
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	s := &results.Summary{
		File:    "-",
		Query:   "b",
		Matches: []search.Match{{Path: "b", LeafKey: "b", Value: document.Bool(false), Line: 1, Column: 2}},
	}
	if err := NewWithWriter(&buf).Format(s, &results.Summary{File: "-", Query: "b"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	dec := stdjson.NewDecoder(&buf)
	var first, second []protocol.Location
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("first document: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("second document: %v", err)
	}

	if len(first) != 1 || first[0].URI != StdinURI || first[0].Range.End.Character != 5 {
		t.Errorf("first = %+v", first)
	}
	if second == nil || len(second) != 0 {
		t.Errorf("second = %#v, want empty array", second)
	}
}
