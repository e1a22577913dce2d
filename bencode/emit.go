package bencode

import (
	"sort"
	"strconv"
)

// ============================================================
// Canonical Serializer
// ============================================================
//
// Encoding is a total function: every BValue has exactly one canonical
// byte form. Dictionaries emit their keys in byte-lexicographic
// ascending order regardless of how the in-memory map iterates, so the
// wire form is deterministic and suitable for hashing and signing.

// Encode returns the canonical bencode encoding of the value tree.
func (v *BValue) Encode() []byte {
	return v.AppendEncode(nil)
}

// AppendEncode appends the canonical encoding of v to dst and returns
// the extended slice.
func (v *BValue) AppendEncode(dst []byte) []byte {
	switch v.typ {
	case TypeInteger:
		dst = append(dst, 'i')
		dst = strconv.AppendInt(dst, v.intVal, 10)
		dst = append(dst, 'e')

	case TypeByteString:
		dst = appendByteString(dst, v.strVal)

	case TypeList:
		dst = append(dst, 'l')
		for _, elem := range v.listVal {
			dst = elem.AppendEncode(dst)
		}
		dst = append(dst, 'e')

	case TypeDictionary:
		dst = append(dst, 'd')
		keys := make([]string, 0, len(v.dictVal))
		for k := range v.dictVal {
			keys = append(keys, k)
		}
		// Go string comparison is bytewise, which is exactly the
		// canonical key order.
		sort.Strings(keys)
		for _, k := range keys {
			dst = appendByteString(dst, []byte(k))
			dst = v.dictVal[k].AppendEncode(dst)
		}
		dst = append(dst, 'e')
	}
	return dst
}

// appendByteString appends <length>:<raw bytes>.
func appendByteString(dst, b []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, ':')
	return append(dst, b...)
}
