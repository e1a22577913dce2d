package bencode

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ============================================================
// CBOR Bridge
// ============================================================
//
// Transcodes bencode trees to CBOR and back for storage and interop
// with CBOR-speaking systems. Byte strings map to CBOR byte strings,
// so the transcoding is lossless for binary payloads, unlike the JSON
// bridge.

// cborEnc is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same tree always produces
// identical bytes, mirroring the determinism of Encode.
var cborEnc cbor.EncMode

// cborDec is the CBOR decoder configured to accept standard CBOR.
var cborDec cbor.DecMode

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bencode: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		// Bencode dictionaries only ever have string keys, so any-typed
		// map targets decode as map[string]any rather than the CBOR
		// default map[interface{}]interface{}.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bencode: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR transcodes a value tree to deterministic CBOR bytes.
func ToCBOR(v *BValue) ([]byte, error) {
	doc, err := toCBORValue(v)
	if err != nil {
		return nil, err
	}
	return cborEnc.Marshal(doc)
}

func toCBORValue(v *BValue) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("bencode: nil value")
	}
	switch v.typ {
	case TypeInteger:
		return v.intVal, nil

	case TypeByteString:
		return v.strVal, nil

	case TypeList:
		items := make([]interface{}, 0, len(v.listVal))
		for i, elem := range v.listVal {
			c, err := toCBORValue(elem)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			items = append(items, c)
		}
		return items, nil

	case TypeDictionary:
		obj := make(map[string]interface{}, len(v.dictVal))
		for k, elem := range v.dictVal {
			c, err := toCBORValue(elem)
			if err != nil {
				return nil, fmt.Errorf("dictionary[%q]: %w", k, err)
			}
			obj[k] = c
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("bencode: unsupported type %s", v.typ)
	}
}

// FromCBOR transcodes CBOR bytes to a value tree. CBOR text and byte
// strings both become byte strings; integers must fit in int64;
// floats, booleans, null, and tagged values are rejected.
func FromCBOR(data []byte) (*BValue, error) {
	var doc interface{}
	if err := cborDec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bencode: CBOR parse error: %w", err)
	}
	return fromCBORValue(doc)
}

func fromCBORValue(doc interface{}) (*BValue, error) {
	switch val := doc.(type) {
	case int64:
		return Integer(val), nil

	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("bencode: integer %d overflows int64", val)
		}
		return Integer(int64(val)), nil

	case string:
		return Text(val), nil

	case []byte:
		return ByteString(val), nil

	case []interface{}:
		elems := make([]*BValue, 0, len(val))
		for i, item := range val {
			v, err := fromCBORValue(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			elems = append(elems, v)
		}
		return List(elems...), nil

	case map[string]interface{}:
		entries := make(map[string]*BValue, len(val))
		for k, item := range val {
			v, err := fromCBORValue(item)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", k, err)
			}
			entries[k] = v
		}
		return Dict(entries), nil

	default:
		return nil, fmt.Errorf("bencode: CBOR type %T has no bencode form", doc)
	}
}
