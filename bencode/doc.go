// Package bencode implements a complete codec for the bencode
// serialization format used by BitTorrent and similar protocols.
//
// The codec is a one-way pipeline:
//
//	bytes -> tokens -> value tree -> bytes
//
// Tokenize splits a raw buffer into primitive tokens, Parse assembles
// the tokens into a recursive BValue tree, and Encode re-serializes a
// tree into its canonical byte form.
//
// # Data Model
//
// Scalars:    integer (signed 64-bit), byte string (opaque bytes)
// Containers: list (ordered), dictionary (byte-string keys, unordered)
//
// # Wire Syntax
//
//	Integer:     i<decimal>e        i42e, i-42e, i0e
//	ByteString:  <length>:<bytes>   4:spam, 0:
//	List:        l<values>e         l4:spami42ee
//	Dictionary:  d<key value...>e   d3:bar4:spam3:fooi42ee
//
// # Canonical Form
//
// Dictionaries carry no storage order, but Encode always emits keys in
// byte-lexicographic ascending order, so equal trees produce identical
// bytes. This is what makes the encoding usable for hashing and
// signing (e.g. the BitTorrent info hash); see Digest.
//
// # Strictness
//
// Decoding is strict about canonical integers: empty digit runs,
// leading zeros, negative zero, and values outside int64 are all
// rejected with typed errors rather than silently accepted.
//
// # Errors
//
// Every failure is a typed, recoverable error. Lexer failures surface
// as *LexError, parser failures as *ParseError, and the Decode entry
// points wrap either in *Error tagged with the stage that failed.
package bencode
