package bencode

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// ============================================================
// Canonical Digests
// ============================================================
//
// Because Encode is deterministic, hashing the canonical bytes gives a
// stable content address for a value tree: two trees hash identically
// exactly when they are structurally equal, regardless of dictionary
// insertion order. Protocol-mandated hashes (the SHA-1 BitTorrent info
// hash) live with their protocol packages; these digests are for
// general content addressing.

// Digest returns the BLAKE3-256 digest of the canonical encoding of v.
func Digest(v *BValue) [32]byte {
	return blake3.Sum256(v.Encode())
}

// DigestBytes returns the BLAKE3-256 digest of raw bytes. Use this
// when you already hold a canonical encoding.
func DigestBytes(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// FormatDigest returns the lowercase hex representation of a digest.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a 64-character hex string into a 32-byte digest.
func ParseDigest(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("bencode: parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("bencode: digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
