package bencode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between bencode trees and JSON for inspection and interop.
// JSON cannot carry arbitrary bytes, so byte strings that are not
// valid UTF-8 are emitted as base64 text; the bencode -> JSON
// direction is therefore lossy for binary payloads (the reverse
// direction treats every JSON string as literal text). Binary payloads
// that happen to form valid UTF-8 are emitted as text, not base64.
// Round trips are exact for text-only documents.

// ToJSON converts a value tree to JSON bytes.
func ToJSON(v *BValue) ([]byte, error) {
	doc, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func toJSONValue(v *BValue) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("bencode: nil value")
	}
	switch v.typ {
	case TypeInteger:
		return v.intVal, nil

	case TypeByteString:
		if utf8.Valid(v.strVal) {
			return string(v.strVal), nil
		}
		return base64.StdEncoding.EncodeToString(v.strVal), nil

	case TypeList:
		items := make([]interface{}, 0, len(v.listVal))
		for i, elem := range v.listVal {
			j, err := toJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			items = append(items, j)
		}
		return items, nil

	case TypeDictionary:
		obj := make(map[string]interface{}, len(v.dictVal))
		for k, elem := range v.dictVal {
			j, err := toJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("dictionary[%q]: %w", k, err)
			}
			obj[k] = j
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("bencode: unsupported type %s", v.typ)
	}
}

// FromJSON converts JSON bytes to a value tree. JSON strings become
// byte strings, integral numbers become integers; null, booleans, and
// fractional numbers have no bencode representation and are rejected.
func FromJSON(data []byte) (*BValue, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bencode: JSON parse error: %w", err)
	}
	return fromJSONValue(doc)
}

func fromJSONValue(doc interface{}) (*BValue, error) {
	switch val := doc.(type) {
	case string:
		return Text(val), nil

	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("bencode: non-finite number has no bencode form")
		}
		if val != math.Trunc(val) {
			return nil, fmt.Errorf("bencode: fractional number %v has no bencode form", val)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot
		// hold, so the upper bound is exclusive. -2^63 is exactly
		// representable and valid.
		if val < math.MinInt64 || val >= math.MaxInt64+1 {
			return nil, fmt.Errorf("bencode: number %v overflows int64", val)
		}
		return Integer(int64(val)), nil

	case []interface{}:
		elems := make([]*BValue, 0, len(val))
		for i, item := range val {
			v, err := fromJSONValue(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			elems = append(elems, v)
		}
		return List(elems...), nil

	case map[string]interface{}:
		entries := make(map[string]*BValue, len(val))
		for k, item := range val {
			v, err := fromJSONValue(item)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			entries[k] = v
		}
		return Dict(entries), nil

	case nil:
		return nil, fmt.Errorf("bencode: null has no bencode form")

	case bool:
		return nil, fmt.Errorf("bencode: boolean has no bencode form")

	default:
		return nil, fmt.Errorf("bencode: unsupported JSON type %T", doc)
	}
}
