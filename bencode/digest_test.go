package bencode

import "testing"

func TestDigest_StableAcrossInsertionOrder(t *testing.T) {
	a := Dict(nil)
	a.Set("b", Integer(2))
	a.Set("a", Integer(1))
	a.Set("c", Integer(3))

	b := Dict(nil)
	b.Set("c", Integer(3))
	b.Set("a", Integer(1))
	b.Set("b", Integer(2))

	if Digest(a) != Digest(b) {
		t.Error("Equal trees must have equal digests regardless of insertion order")
	}
}

func TestDigest_DistinguishesValues(t *testing.T) {
	if Digest(Integer(1)) == Digest(Integer(2)) {
		t.Error("Different values must have different digests")
	}
	if Digest(Text("42")) == Digest(Integer(42)) {
		t.Error("Bytestring and integer forms must have different digests")
	}
}

func TestDigest_MatchesCanonicalBytes(t *testing.T) {
	v := Dict(map[string]*BValue{"foo": Integer(42), "bar": Text("spam")})
	if Digest(v) != DigestBytes(v.Encode()) {
		t.Error("Digest must equal DigestBytes of the canonical encoding")
	}
}

func TestFormatParseDigest(t *testing.T) {
	d := Digest(Text("spam"))

	s := FormatDigest(d)
	if len(s) != 64 {
		t.Fatalf("Expected 64 hex chars, got %d", len(s))
	}

	parsed, err := ParseDigest(s)
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != d {
		t.Error("Format/Parse round trip changed the digest")
	}
}

func TestParseDigest_Invalid(t *testing.T) {
	if _, err := ParseDigest("zz"); err == nil {
		t.Error("Non-hex input should fail")
	}
	if _, err := ParseDigest("abcd"); err == nil {
		t.Error("Short input should fail")
	}
}
