package document

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "html_not_escaped", text: `{"a":"<b>&"}`, want: `{"a":"<b>&"}`},
		{name: "escapes_quotes", text: `["say \"hi\""]`, want: `["say \"hi\""]`},
		{name: "unicode_kept", text: `{"k":"é"}`, want: `{"k":"é"}`},
		{name: "whitespace_removed", text: "{ \"a\" : [ 1 , 2 ] }", want: `{"a":[1,2]}`},
		{name: "number_literal_kept", text: `[1e3, -0.10]`, want: `[1e3,-0.10]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := Compact(v); got != tt.want {
				t.Errorf("Compact() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshalJSONEmbedsValue(t *testing.T) {
	v, err := Parse(`{"b":1,"a":[true]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := json.Marshal(struct {
		Value Value `json:"value"`
	}{Value: v})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"value":{"b":1,"a":[true]}}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestToAny(t *testing.T) {
	v, err := Parse(`{"a":[1,"x",null,false],"b":{}}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]any{
		"a": []any{json.Number("1"), "x", nil, false},
		"b": map[string]any{},
	}
	if diff := cmp.Diff(want, ToAny(v)); diff != "" {
		t.Errorf("ToAny() mismatch (-want +got):\n%s", diff)
	}
}

func TestLineIndexPosition(t *testing.T) {
	li := NewLineIndex("ab\nçd\n")

	tests := []struct {
		offset int
		want   Position
	}{
		{offset: 0, want: Position{0, 0}},
		{offset: 2, want: Position{0, 2}},
		{offset: 3, want: Position{1, 0}},
		{offset: 5, want: Position{1, 1}},
		{offset: 7, want: Position{2, 0}},
		{offset: 100, want: Position{2, 0}},
	}
	for _, tt := range tests {
		if got := li.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
	if li.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", li.LineCount())
	}
}
