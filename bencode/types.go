package bencode

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf8"
)

// BType represents bencode value types.
type BType uint8

const (
	TypeInteger BType = iota
	TypeByteString
	TypeList
	TypeDictionary
)

// String returns the type name.
func (t BType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeByteString:
		return "bytestring"
	case TypeList:
		return "list"
	case TypeDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// BValue represents a decoded bencode value: a recursive tree over
// integers, byte strings, lists, and dictionaries. A tree owns all of
// its children outright; parsing never aliases the input buffer, so a
// parsed tree is safe to share read-only across goroutines.
//
// Byte strings are opaque byte sequences. Real-world payloads (piece
// hashes, peer blobs) are not text; use AsText when a field is known
// to be UTF-8.
type BValue struct {
	typ BType

	intVal  int64
	strVal  []byte
	listVal []*BValue
	dictVal map[string]*BValue
}

// ============================================================
// Constructors
// ============================================================

// Integer creates an integer value.
func Integer(n int64) *BValue {
	return &BValue{typ: TypeInteger, intVal: n}
}

// ByteString creates a byte-string value. The slice is retained, not
// copied; the caller must not mutate it afterwards.
func ByteString(b []byte) *BValue {
	return &BValue{typ: TypeByteString, strVal: b}
}

// Text creates a byte-string value from a Go string.
func Text(s string) *BValue {
	return &BValue{typ: TypeByteString, strVal: []byte(s)}
}

// List creates a list value.
func List(values ...*BValue) *BValue {
	return &BValue{typ: TypeList, listVal: values}
}

// Dict creates a dictionary value from the given entries. Keys are
// byte-preserving Go strings, so binary keys survive unchanged. A nil
// map creates an empty dictionary.
func Dict(entries map[string]*BValue) *BValue {
	if entries == nil {
		entries = make(map[string]*BValue)
	}
	return &BValue{typ: TypeDictionary, dictVal: entries}
}

// Pair is one dictionary entry for DictFromPairs.
type Pair struct {
	Key   string
	Value *BValue
}

// DictFromPairs creates a dictionary value from key/value pairs. A
// later pair with the same key overwrites an earlier one.
func DictFromPairs(pairs ...Pair) *BValue {
	entries := make(map[string]*BValue, len(pairs))
	for _, p := range pairs {
		entries[p.Key] = p.Value
	}
	return Dict(entries)
}

// ============================================================
// Accessors
// ============================================================

// Type returns the value type.
func (v *BValue) Type() BType {
	return v.typ
}

// AsInteger returns the integer payload.
func (v *BValue) AsInteger() (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("bencode: nil value")
	}
	if v.typ != TypeInteger {
		return 0, fmt.Errorf("bencode: expected integer, got %s", v.typ)
	}
	return v.intVal, nil
}

// AsBytes returns the raw byte-string payload.
func (v *BValue) AsBytes() ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("bencode: nil value")
	}
	if v.typ != TypeByteString {
		return nil, fmt.Errorf("bencode: expected bytestring, got %s", v.typ)
	}
	return v.strVal, nil
}

// AsText returns the byte-string payload as a string, failing if the
// bytes are not valid UTF-8.
func (v *BValue) AsText() (string, error) {
	b, err := v.AsBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("bencode: bytestring is not valid UTF-8")
	}
	return string(b), nil
}

// AsList returns the list elements.
func (v *BValue) AsList() ([]*BValue, error) {
	if v == nil {
		return nil, fmt.Errorf("bencode: nil value")
	}
	if v.typ != TypeList {
		return nil, fmt.Errorf("bencode: expected list, got %s", v.typ)
	}
	return v.listVal, nil
}

// AsDict returns the dictionary mapping.
func (v *BValue) AsDict() (map[string]*BValue, error) {
	if v == nil {
		return nil, fmt.Errorf("bencode: nil value")
	}
	if v.typ != TypeDictionary {
		return nil, fmt.Errorf("bencode: expected dictionary, got %s", v.typ)
	}
	return v.dictVal, nil
}

// Len returns the length of a list or dictionary, or the byte length
// of a byte string.
func (v *BValue) Len() int {
	switch v.typ {
	case TypeByteString:
		return len(v.strVal)
	case TypeList:
		return len(v.listVal)
	case TypeDictionary:
		return len(v.dictVal)
	default:
		return 0
	}
}

// Get returns a dictionary entry by key, or nil if the value is not a
// dictionary or the key is absent.
func (v *BValue) Get(key string) *BValue {
	if v == nil || v.typ != TypeDictionary {
		return nil
	}
	return v.dictVal[key]
}

// Index returns the i-th element of a list.
func (v *BValue) Index(i int) (*BValue, error) {
	if v == nil || v.typ != TypeList {
		return nil, fmt.Errorf("bencode: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("bencode: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}

// Keys returns the dictionary keys in byte-lexicographic ascending
// order, the same order Encode emits them in.
func (v *BValue) Keys() []string {
	if v == nil || v.typ != TypeDictionary {
		return nil
	}
	keys := make([]string, 0, len(v.dictVal))
	for k := range v.dictVal {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ============================================================
// Mutators (programmatic construction only)
// ============================================================

// Append adds a value to a list.
func (v *BValue) Append(val *BValue) {
	if v.typ != TypeList {
		panic("bencode: cannot append to non-list")
	}
	v.listVal = append(v.listVal, val)
}

// Set inserts or replaces a dictionary entry.
func (v *BValue) Set(key string, val *BValue) {
	if v.typ != TypeDictionary {
		panic("bencode: cannot set on non-dictionary")
	}
	v.dictVal[key] = val
}

// ============================================================
// Equality and copying
// ============================================================

// Equal reports structural equality. List order is significant;
// dictionary storage order is not (dictionaries compare by key set).
func (v *BValue) Equal(o *BValue) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeInteger:
		return v.intVal == o.intVal
	case TypeByteString:
		return bytes.Equal(v.strVal, o.strVal)
	case TypeList:
		if len(v.listVal) != len(o.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(o.listVal[i]) {
				return false
			}
		}
		return true
	case TypeDictionary:
		if len(v.dictVal) != len(o.dictVal) {
			return false
		}
		for k, val := range v.dictVal {
			other, ok := o.dictVal[k]
			if !ok || !val.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the value tree.
func (v *BValue) Clone() *BValue {
	if v == nil {
		return nil
	}
	switch v.typ {
	case TypeInteger:
		return Integer(v.intVal)
	case TypeByteString:
		b := make([]byte, len(v.strVal))
		copy(b, v.strVal)
		return ByteString(b)
	case TypeList:
		elems := make([]*BValue, len(v.listVal))
		for i, e := range v.listVal {
			elems[i] = e.Clone()
		}
		return List(elems...)
	case TypeDictionary:
		entries := make(map[string]*BValue, len(v.dictVal))
		for k, e := range v.dictVal {
			entries[k] = e.Clone()
		}
		return Dict(entries)
	default:
		return nil
	}
}

// String returns a compact debug representation. Byte strings render
// quoted when printable, as a byte count otherwise; this is for
// diagnostics, not for the wire (use Encode for that).
func (v *BValue) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.typ {
	case TypeInteger:
		return fmt.Sprintf("%d", v.intVal)
	case TypeByteString:
		if utf8.Valid(v.strVal) {
			return fmt.Sprintf("%q", v.strVal)
		}
		return fmt.Sprintf("<%d bytes>", len(v.strVal))
	case TypeList:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, e := range v.listVal {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	case TypeDictionary:
		var b bytes.Buffer
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%q=%s", k, v.dictVal[k].String())
		}
		b.WriteByte('}')
		return b.String()
	default:
		return "<unknown>"
	}
}
