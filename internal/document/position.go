package document

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Position is a zero-based line and column. Columns count Unicode code points
// from the start of the line.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String renders the position one-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Lines splits text on '\n'. A trailing '\r' stays part of the line.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// ColumnAt converts a byte offset within line into a code point column.
func ColumnAt(line string, byteOffset int) int {
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCountInString(line[:byteOffset])
}

// LineIndex maps byte offsets of a text to positions.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Position returns the position of a byte offset. Offsets past the end clamp
// to the end of the text.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	start := li.starts[line]
	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(li.text[start:offset]),
	}
}

// LineCount returns the number of lines, counting a final line without '\n'.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}
