package bencode

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCBOR_RoundTrip(t *testing.T) {
	trees := []*BValue{
		Integer(0),
		Integer(-9001),
		Integer(9223372036854775807),
		List(Integer(1), Integer(2)),
		Dict(map[string]*BValue{
			"foo":  Integer(42),
			"bar":  Text("spam"),
			"list": List(Integer(1), Dict(map[string]*BValue{"deep": Integer(-1)})),
		}),
	}

	for _, tree := range trees {
		data, err := ToCBOR(tree)
		if err != nil {
			t.Fatalf("ToCBOR of %s failed: %v", tree, err)
		}
		back, err := FromCBOR(data)
		if err != nil {
			t.Fatalf("FromCBOR of %s failed: %v", tree, err)
		}
		if diff := cmp.Diff(tree, back); diff != "" {
			t.Errorf("CBOR round trip mismatch for %s (-want +got):\n%s", tree, diff)
		}
	}
}

// TestCBOR_BinaryLossless checks the property the JSON bridge lacks:
// byte strings survive as bytes, not base64 text.
func TestCBOR_BinaryLossless(t *testing.T) {
	blob := []byte{0x00, 0xde, 0xad, 0xbe, 0xef, 0xff}

	data, err := ToCBOR(ByteString(blob))
	if err != nil {
		t.Fatalf("ToCBOR failed: %v", err)
	}
	back, err := FromCBOR(data)
	if err != nil {
		t.Fatalf("FromCBOR failed: %v", err)
	}

	b, err := back.AsBytes()
	if err != nil {
		t.Fatalf("AsBytes failed: %v", err)
	}
	if !bytes.Equal(b, blob) {
		t.Errorf("Expected %x, got %x", blob, b)
	}
}

func TestCBOR_Deterministic(t *testing.T) {
	a := Dict(nil)
	a.Set("b", Integer(2))
	a.Set("a", Integer(1))

	b := Dict(nil)
	b.Set("a", Integer(1))
	b.Set("b", Integer(2))

	dataA, err := ToCBOR(a)
	if err != nil {
		t.Fatalf("ToCBOR failed: %v", err)
	}
	dataB, err := ToCBOR(b)
	if err != nil {
		t.Fatalf("ToCBOR failed: %v", err)
	}
	if !bytes.Equal(dataA, dataB) {
		t.Errorf("Deterministic encoding differs:\n%x\n%x", dataA, dataB)
	}
}

func TestFromCBOR_Rejections(t *testing.T) {
	// CBOR encodings with no bencode form: null (0xf6), true (0xf5),
	// float 1.5 (0xf9 0x3e 0x00).
	tests := []struct {
		name string
		data []byte
	}{
		{"null", []byte{0xf6}},
		{"bool", []byte{0xf5}},
		{"float", []byte{0xf9, 0x3e, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromCBOR(tt.data); err == nil {
				t.Errorf("Expected rejection of CBOR %x", tt.data)
			}
		})
	}
}
