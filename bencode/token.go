package bencode

import (
	"fmt"
	"strconv"
)

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenDictionary TokenType = iota // d
	TokenList                        // l
	TokenEnd                         // e
	TokenInteger                     // i<decimal>e
	TokenByteString                  // <length>:<bytes>
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenDictionary:
		return "DICTIONARY"
	case TokenList:
		return "LIST"
	case TokenEnd:
		return "END"
	case TokenInteger:
		return "INTEGER"
	case TokenByteString:
		return "BYTESTRING"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single lexical unit of a bencode document.
// Tokens carry no nested structure; nesting is implicit via the
// DICTIONARY/LIST open markers and the matching END markers.
type Token struct {
	Type   TokenType
	Int    int64  // payload when Type == TokenInteger
	Str    []byte // payload when Type == TokenByteString
	Offset int    // byte offset of the token's first byte in the input
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenInteger:
		return fmt.Sprintf("INTEGER(%d)", t.Int)
	case TokenByteString:
		return fmt.Sprintf("BYTESTRING(%q)", t.Str)
	default:
		return t.Type.String()
	}
}

// Shift returns the number of input bytes the token spans on the wire
// in canonical form. The tokenizing loop itself advances by the byte
// count the reader actually consumed, so Shift is informational: the
// two agree for canonical input.
func (t Token) Shift() int {
	switch t.Type {
	case TokenInteger:
		return 1 + len(strconv.FormatInt(t.Int, 10)) + 1
	case TokenByteString:
		return len(strconv.Itoa(len(t.Str))) + 1 + len(t.Str)
	default:
		return 1
	}
}

// LexErrorKind identifies the lexical rule a buffer violated.
type LexErrorKind uint8

const (
	// LexInvalidInteger reports an i...e literal with an empty or
	// malformed digit run, a missing terminator, negative zero,
	// leading zeros, or a value outside int64.
	LexInvalidInteger LexErrorKind = iota
	// LexInvalidLength reports a byte-string length prefix that is
	// malformed or missing its ':' separator.
	LexInvalidLength
	// LexTruncatedByteString reports a declared length that exceeds
	// the remaining input.
	LexTruncatedByteString
	// LexUnrecognizedLeadingByte reports a byte that cannot begin any
	// bencode token.
	LexUnrecognizedLeadingByte
	// LexEmptyInput reports an empty input buffer.
	LexEmptyInput
)

// String returns the error kind name.
func (k LexErrorKind) String() string {
	switch k {
	case LexInvalidInteger:
		return "InvalidInteger"
	case LexInvalidLength:
		return "InvalidLength"
	case LexTruncatedByteString:
		return "TruncatedByteString"
	case LexUnrecognizedLeadingByte:
		return "UnrecognizedLeadingByte"
	case LexEmptyInput:
		return "EmptyInput"
	default:
		return "Unknown"
	}
}

// LexError represents a tokenizing failure with its byte offset.
type LexError struct {
	Kind   LexErrorKind
	Offset int
	Byte   byte   // offending byte, set for LexUnrecognizedLeadingByte
	Detail string // optional human-readable context
}

func (e *LexError) Error() string {
	msg := e.Kind.String()
	if e.Kind == LexUnrecognizedLeadingByte {
		msg = fmt.Sprintf("%s(%q)", msg, e.Byte)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Kind != LexEmptyInput {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	return msg
}

// lexer walks the input buffer left to right with a single cursor.
type lexer struct {
	input []byte
	pos   int
}

// Tokenize converts a raw byte buffer into its ordered token sequence
// in one linear pass. An empty buffer fails with LexEmptyInput; any
// malformed token fails with the corresponding *LexError.
func Tokenize(data []byte) ([]Token, error) {
	if len(data) == 0 {
		return nil, &LexError{Kind: LexEmptyInput}
	}

	l := &lexer{input: data}
	var tokens []Token
	for l.pos < len(l.input) {
		tok, n, err := l.readToken()
		if err != nil {
			return nil, err
		}
		// Advance by what the reader consumed, not by a separately
		// recomputed shift.
		l.pos += n
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// readToken reads the single token starting at the cursor and returns
// it together with the number of bytes consumed.
func (l *lexer) readToken() (Token, int, error) {
	start := l.pos
	switch b := l.input[start]; {
	case b == 'd':
		return Token{Type: TokenDictionary, Offset: start}, 1, nil
	case b == 'l':
		return Token{Type: TokenList, Offset: start}, 1, nil
	case b == 'e':
		return Token{Type: TokenEnd, Offset: start}, 1, nil
	case b == 'i':
		return l.readInteger()
	case isDigit(b):
		return l.readByteString()
	default:
		return Token{}, 0, &LexError{Kind: LexUnrecognizedLeadingByte, Offset: start, Byte: b}
	}
}

// readInteger reads i<decimal>e. The digit run must be non-empty,
// canonical (no leading zeros, no negative zero), terminated by 'e',
// and fit in a signed 64-bit integer.
func (l *lexer) readInteger() (Token, int, error) {
	start := l.pos
	i := start + 1 // past 'i'

	neg := false
	if i < len(l.input) && l.input[i] == '-' {
		neg = true
		i++
	}

	digits := i
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i == digits {
		return Token{}, 0, &LexError{Kind: LexInvalidInteger, Offset: start, Detail: "integer has no digits"}
	}
	if i >= len(l.input) || l.input[i] != 'e' {
		return Token{}, 0, &LexError{Kind: LexInvalidInteger, Offset: start, Detail: "integer missing 'e' terminator"}
	}

	run := string(l.input[digits:i])
	if len(run) > 1 && run[0] == '0' {
		return Token{}, 0, &LexError{Kind: LexInvalidInteger, Offset: start, Detail: "integer has leading zeros"}
	}
	if neg && run == "0" {
		return Token{}, 0, &LexError{Kind: LexInvalidInteger, Offset: start, Detail: "negative zero is not canonical"}
	}

	text := run
	if neg {
		text = "-" + run
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, 0, &LexError{Kind: LexInvalidInteger, Offset: start, Detail: "integer overflows int64: " + text}
	}

	consumed := i + 1 - start // include the 'e'
	return Token{Type: TokenInteger, Int: n, Offset: start}, consumed, nil
}

// readByteString reads <length>:<bytes>. The declared length is
// validated against the remaining input before the payload is copied,
// so a crafted prefix cannot force an over-allocation.
func (l *lexer) readByteString() (Token, int, error) {
	start := l.pos
	i := start
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i >= len(l.input) || l.input[i] != ':' {
		return Token{}, 0, &LexError{Kind: LexInvalidLength, Offset: start, Detail: "length prefix missing ':' separator"}
	}

	run := string(l.input[start:i])
	if len(run) > 1 && run[0] == '0' {
		return Token{}, 0, &LexError{Kind: LexInvalidLength, Offset: start, Detail: "length has leading zeros"}
	}
	size, err := strconv.Atoi(run)
	if err != nil {
		return Token{}, 0, &LexError{Kind: LexInvalidLength, Offset: start, Detail: "length does not fit in int: " + run}
	}

	payload := i + 1
	if remaining := len(l.input) - payload; size > remaining {
		return Token{}, 0, &LexError{
			Kind:   LexTruncatedByteString,
			Offset: start,
			Detail: fmt.Sprintf("declared %d bytes, %d remain", size, remaining),
		}
	}

	// Copy the payload so the token (and the value tree built from it)
	// does not alias the caller's buffer.
	str := make([]byte, size)
	copy(str, l.input[payload:payload+size])

	consumed := payload + size - start
	return Token{Type: TokenByteString, Str: str, Offset: start}, consumed, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
