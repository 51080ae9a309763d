package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/jsondot/internal/stack"
)

type containerKind uint8

const (
	kindObj containerKind = iota
	kindArr
)

// frame holds a container that is still open while tokens are consumed.
type frame struct {
	kind    containerKind
	obj     *Object
	arr     Array
	needKey bool     // object expects a key next
	key     string   // last key read for an object
	keyPos  Position // where that key starts
}

func (f *frame) value() Value {
	if f.kind == kindObj {
		return f.obj
	}
	if f.arr == nil {
		return Array{}
	}
	return f.arr
}

type parser struct {
	src    string
	dec    *json.Decoder
	lines  *LineIndex
	frames *stack.Stack[frame]
}

// Parse decodes strict JSON text.
func Parse(text string) (Value, error) {
	return parse(text, text)
}

// ParseJSONC decodes JSON with comments and trailing commas. Positions refer
// to the original text.
func ParseJSONC(text string) (Value, error) {
	return parse(text, StripJSONC(text))
}

// parse decodes src and reports positions against original. Both texts must
// have identical byte layout.
func parse(original, src string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	p := &parser{
		src:    src,
		dec:    dec,
		lines:  NewLineIndex(original),
		frames: stack.NewWithCapacity[frame](16),
	}
	return p.run()
}

func (p *parser) run() (Value, error) {
	var root Value

	for {
		offset := int(p.dec.InputOffset())
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			if root == nil {
				return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformed)
			}
			return root, nil
		}
		if err != nil {
			return nil, p.wrap(err)
		}

		if root != nil {
			return nil, &SyntaxError{
				Pos: p.lines.Position(p.skipSpace(offset)),
				Err: fmt.Errorf("%w: unexpected data after top-level value", ErrMalformed),
			}
		}

		top := p.frames.PeekRef()
		if top != nil && top.kind == kindObj && top.needKey {
			if key, ok := tok.(string); ok {
				top.key = key
				top.keyPos = p.lines.Position(p.skipSpace(offset))
				top.needKey = false
				continue
			}
		}

		var v Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				p.frames.Push(frame{kind: kindObj, obj: NewObject(), needKey: true})
				continue
			case '[':
				p.frames.Push(frame{kind: kindArr})
				continue
			default:
				closed, ok := p.frames.Pop()
				if !ok {
					return nil, fmt.Errorf("%w: unbalanced %q", ErrMalformed, rune(t))
				}
				v = closed.value()
			}
		case nil:
			v = Null{}
		case bool:
			v = Bool(t)
		case json.Number:
			v = Number(t)
		case string:
			v = String(t)
		default:
			return nil, fmt.Errorf("%w: unexpected token %T", ErrMalformed, tok)
		}

		if p.attach(v) {
			root = v
		}
	}
}

// attach stores a completed value in the enclosing container. It reports true
// when v is the document root.
func (p *parser) attach(v Value) bool {
	top := p.frames.PeekRef()
	if top == nil {
		return true
	}

	switch top.kind {
	case kindArr:
		top.arr = append(top.arr, v)
	case kindObj:
		top.obj.Set(top.key, v, top.keyPos)
		top.needKey = true
	}
	return false
}

// skipSpace advances past whitespace and separators that the decoder consumes
// lazily before the next token.
func (p *parser) skipSpace(offset int) int {
	for offset < len(p.src) {
		switch p.src[offset] {
		case ' ', '\t', '\n', '\r', ',', ':':
			offset++
		default:
			return offset
		}
	}
	return offset
}

func (p *parser) wrap(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset := int(syntaxErr.Offset)
		if offset > 0 {
			offset--
		}
		return &SyntaxError{Pos: p.lines.Position(offset), Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformed)
	}
	return err
}
