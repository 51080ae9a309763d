// Package structured renders summaries as JSON or YAML documents.
package structured

import (
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"

	"github.com/jacoelho/jsondot/internal/diagnostics"
	"github.com/jacoelho/jsondot/internal/document"
	"github.com/jacoelho/jsondot/internal/formatter"
	"github.com/jacoelho/jsondot/internal/results"
)

// Line and Column are one-based.
type match struct {
	Path   string `json:"path" yaml:"path"`
	Key    string `json:"key" yaml:"key"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Value  any    `json:"value" yaml:"value"`
}

type report struct {
	Session  string              `json:"session" yaml:"session"`
	Run      int                 `json:"run,omitempty" yaml:"run,omitempty"`
	File     string              `json:"file" yaml:"file"`
	Language string              `json:"language,omitempty" yaml:"language,omitempty"`
	Query    string              `json:"query" yaml:"query"`
	Strict   bool                `json:"strict" yaml:"strict"`
	Outcome  string              `json:"outcome" yaml:"outcome"`
	Duration string              `json:"duration" yaml:"duration"`
	Matches  []match             `json:"matches" yaml:"matches"`
	Issues   []diagnostics.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newReport(s *results.Summary, value func(document.Value) any) report {
	r := report{
		Session:  s.SessionID.String(),
		Run:      s.Run,
		File:     s.File,
		Language: s.Language,
		Query:    s.Query,
		Strict:   s.Strict,
		Outcome:  s.Outcome().String(),
		Duration: s.Duration.String(),
		Matches:  make([]match, 0, len(s.Matches)),
		Issues:   s.Issues,
	}
	for _, m := range s.Matches {
		r.Matches = append(r.Matches, match{
			Path:   m.Path,
			Key:    m.LeafKey,
			Line:   m.Line + 1,
			Column: m.Column + 1,
			Value:  value(m.Value),
		})
	}
	return r
}

// JSON writes one indented JSON document per summary.
type JSON struct {
	writer io.Writer
}

func NewJSON() formatter.Formatter {
	return &JSON{writer: os.Stdout}
}

func NewJSONWithWriter(writer io.Writer) formatter.Formatter {
	return &JSON{writer: writer}
}

func (f *JSON) Format(summaries ...*results.Summary) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	for _, s := range summaries {
		// document values marshal themselves in source key order
		if err := enc.Encode(newReport(s, func(v document.Value) any { return v })); err != nil {
			return err
		}
	}
	return nil
}

// YAML writes one YAML document per summary, separated by "---".
type YAML struct {
	writer io.Writer
}

func NewYAML() formatter.Formatter {
	return &YAML{writer: os.Stdout}
}

func NewYAMLWithWriter(writer io.Writer) formatter.Formatter {
	return &YAML{writer: writer}
}

func (f *YAML) Format(summaries ...*results.Summary) error {
	for i, s := range summaries {
		if i > 0 {
			if _, err := io.WriteString(f.writer, "---\n"); err != nil {
				return err
			}
		}
		out, err := yaml.Marshal(newReport(s, yamlValue))
		if err != nil {
			return err
		}
		if _, err := f.writer.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// yamlValue converts v into values go-yaml encodes natively, keeping
// object key order with MapSlice.
func yamlValue(v document.Value) any {
	switch t := v.(type) {
	case document.Bool:
		return bool(t)
	case document.Number:
		return yamlNumber(string(t))
	case document.String:
		return string(t)
	case document.Array:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = yamlValue(el)
		}
		return out
	case *document.Object:
		out := make(yaml.MapSlice, 0, t.Len())
		for _, m := range t.Members() {
			out = append(out, yaml.MapItem{Key: m.Key, Value: yamlValue(m.Value)})
		}
		return out
	default:
		return nil
	}
}

func yamlNumber(literal string) any {
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f
	}
	return literal
}
