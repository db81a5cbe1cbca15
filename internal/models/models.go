package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant of the JSON value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is an immutable, decoded JSON value.
// The zero Value is a JSON null.
type Value struct {
	kind   Kind
	flag   bool
	text   string // number text or string contents
	items  []Value
	fields *orderedmap.OrderedMap[string, Value]
}

// Pair is a single key/value entry used to build a mapping.
type Pair struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Number returns a number value carrying its textual form verbatim,
// e.g. "12", "1.50" or "-3e7".
func Number(text string) Value {
	return Value{kind: KindNumber, text: text}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Sequence returns a sequence holding a copy of items.
func Sequence(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindSequence, items: copied}
}

// Mapping returns a mapping with the given entries in order.
// A repeated key keeps its first position and takes the last value,
// which matches how encoding/json treats duplicate object keys.
func Mapping(pairs ...Pair) Value {
	fields := orderedmap.New[string, Value]()
	for _, p := range pairs {
		fields.Set(p.Key, p.Value)
	}
	return Value{kind: KindMapping, fields: fields}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsScalar reports whether v is null, a bool, a number or a string.
func (v Value) IsScalar() bool {
	return v.kind != KindSequence && v.kind != KindMapping
}

// IsEmptyCollection reports whether v is a sequence or mapping with no entries.
func (v Value) IsEmptyCollection() bool {
	return !v.IsScalar() && v.Len() == 0
}

// Len returns the number of items of a sequence or entries of a mapping,
// and zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		if v.fields == nil {
			return 0
		}
		return v.fields.Len()
	default:
		return 0
	}
}

// AsBool returns the payload of a bool value.
func (v Value) AsBool() bool {
	return v.flag
}

// Text returns the verbatim text of a number or the contents of a string.
func (v Value) Text() string {
	return v.text
}

// Items returns the elements of a sequence. The returned slice is a copy.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	copied := make([]Value, len(v.items))
	copy(copied, v.items)
	return copied
}

// Each calls fn for every mapping entry in insertion order.
// Iteration stops early if fn returns false.
func (v Value) Each(fn func(key string, value Value) bool) {
	if v.kind != KindMapping || v.fields == nil {
		return
	}
	for pair := v.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns the mapping keys in insertion order.
func (v Value) Keys() []string {
	keys := make([]string, 0, v.Len())
	v.Each(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Get looks up a mapping entry by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping || v.fields == nil {
		return Value{}, false
	}
	return v.fields.Get(key)
}

// Equal reports whether a and b are structurally identical, including
// mapping key order and the verbatim text of numbers.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.flag == b.flag
	case KindNumber, KindString:
		return a.text == b.text
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() == 0 {
			return true
		}
		pa, pb := a.fields.Oldest(), b.fields.Oldest()
		for ; pa != nil && pb != nil; pa, pb = pa.Next(), pb.Next() {
			if pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Document is a decoded JSON document together with where it came from.
type Document struct {
	Root Value
	// Source names the input, e.g. a file path or "stdin".
	Source string
}
