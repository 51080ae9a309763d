package document

import (
	"bytes"
	"encoding/json"
)

// Compact renders v as single-line JSON with object keys in source order.
func Compact(v Value) string {
	var buf bytes.Buffer
	appendCompact(&buf, v)
	return buf.String()
}

func appendCompact(buf *bytes.Buffer, v Value) {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(string(t))
	case String:
		appendString(buf, string(t))
	case Array:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendCompact(buf, el)
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, m := range t.Members() {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendString(buf, m.Key)
			buf.WriteByte(':')
			appendCompact(buf, m.Value)
		}
		buf.WriteByte('}')
	}
}

func appendString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode only fails for unsupported types.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // trailing newline from Encode
}

func (n Null) MarshalJSON() ([]byte, error)    { return []byte(Compact(n)), nil }
func (b Bool) MarshalJSON() ([]byte, error)    { return []byte(Compact(b)), nil }
func (n Number) MarshalJSON() ([]byte, error)  { return []byte(Compact(n)), nil }
func (s String) MarshalJSON() ([]byte, error)  { return []byte(Compact(s)), nil }
func (a Array) MarshalJSON() ([]byte, error)   { return []byte(Compact(a)), nil }
func (o *Object) MarshalJSON() ([]byte, error) { return []byte(Compact(o)), nil }

// ToAny converts v to the shapes produced by encoding/json with UseNumber:
// map[string]any, []any, json.Number, string, bool and nil.
func ToAny(v Value) any {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = ToAny(el)
		}
		return out
	case *Object:
		out := make(map[string]any, t.Len())
		for _, m := range t.Members() {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}
