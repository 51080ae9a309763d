package document

import (
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a parsed JSON value.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	String string
	// Number keeps the literal text from the source.
	Number string
	Array  []Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}

// Float64 converts the literal to a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// IsContainer reports whether v is an array or an object.
func IsContainer(v Value) bool {
	switch v.(type) {
	case Array, *Object:
		return true
	default:
		return false
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
	// Pos is where the opening quote of the key sits in the source text.
	Pos Position
}

// Object is an ordered mapping with unique keys.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// Set stores key. A repeated key keeps its original slot but takes the new
// value and position.
func (o *Object) Set(key string, v Value, pos Position) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		o.members[i].Pos = pos
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v, Pos: pos})
}

func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Members returns the members in insertion order. The slice must not be modified.
func (o *Object) Members() []Member {
	return o.members
}

func (o *Object) Len() int {
	return len(o.members)
}
