package bencode

import "fmt"

// ParseErrorKind identifies the structural rule a token sequence
// violated.
type ParseErrorKind uint8

const (
	// ParseNoTokens reports an empty token sequence.
	ParseNoTokens ParseErrorKind = iota
	// ParseUnexpectedEnd reports an END token where a value was
	// expected.
	ParseUnexpectedEnd
	// ParseUnterminatedList reports a list whose tokens ran out before
	// its END marker.
	ParseUnterminatedList
	// ParseInvalidDictionaryKey reports a dictionary key that is not a
	// byte string.
	ParseInvalidDictionaryKey
	// ParseUnterminatedDictionary reports a dictionary whose tokens
	// ran out before its END marker.
	ParseUnterminatedDictionary
	// ParseMaxDepthExceeded reports nesting beyond the configured
	// depth bound.
	ParseMaxDepthExceeded
)

// String returns the error kind name.
func (k ParseErrorKind) String() string {
	switch k {
	case ParseNoTokens:
		return "NoTokens"
	case ParseUnexpectedEnd:
		return "UnexpectedEnd"
	case ParseUnterminatedList:
		return "UnterminatedList"
	case ParseInvalidDictionaryKey:
		return "InvalidDictionaryKey"
	case ParseUnterminatedDictionary:
		return "UnterminatedDictionary"
	case ParseMaxDepthExceeded:
		return "MaxDepthExceeded"
	default:
		return "Unknown"
	}
}

// ParseError represents a structural parsing failure. Offset is the
// byte offset of the token that triggered the failure (for the
// unterminated kinds, the offset of the unclosed open marker).
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Kind != ParseNoTokens {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	return msg
}

// DefaultMaxDepth bounds container nesting during parsing. Any
// legitimate document fits comfortably; adversarial inputs such as a
// megabyte of 'l' bytes fail with ParseMaxDepthExceeded instead of
// exhausting the stack.
const DefaultMaxDepth = 1000

// ParseOptions configures the parser.
type ParseOptions struct {
	// MaxDepth bounds container nesting. Zero or negative selects
	// DefaultMaxDepth.
	MaxDepth int
}

// DefaultParseOptions returns the default parser configuration.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxDepth: DefaultMaxDepth}
}

// tokenStream consumes a token slice front to back. It is the Go
// rendition of processing a reversed vector as a pop-from-end stack.
type tokenStream struct {
	tokens []Token
	pos    int
}

// next returns the front token and advances, or ok=false when the
// stream is exhausted.
func (ts *tokenStream) next() (Token, bool) {
	if ts.pos >= len(ts.tokens) {
		return Token{}, false
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok, true
}

func (ts *tokenStream) atEnd() bool {
	return ts.pos >= len(ts.tokens)
}

// Parse assembles a token sequence into a value tree. Tokens after
// the first complete value are ignored; use DecodeAll to consume a
// buffer of concatenated values.
func Parse(tokens []Token) (*BValue, error) {
	return ParseWithOptions(tokens, DefaultParseOptions())
}

// ParseWithOptions parses with an explicit configuration.
func ParseWithOptions(tokens []Token, opts ParseOptions) (*BValue, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &parser{stream: &tokenStream{tokens: tokens}, maxDepth: opts.MaxDepth}

	tok, ok := p.stream.next()
	if !ok {
		return nil, &ParseError{Kind: ParseNoTokens}
	}
	return p.parseToken(tok, 0)
}

type parser struct {
	stream   *tokenStream
	maxDepth int
}

// parseToken parses the value that begins with an already-consumed
// token. depth counts the containers currently open around it.
func (p *parser) parseToken(tok Token, depth int) (*BValue, error) {
	switch tok.Type {
	case TokenInteger:
		return Integer(tok.Int), nil
	case TokenByteString:
		return ByteString(tok.Str), nil
	case TokenList:
		if depth+1 > p.maxDepth {
			return nil, &ParseError{Kind: ParseMaxDepthExceeded, Offset: tok.Offset,
				Detail: fmt.Sprintf("nesting exceeds %d", p.maxDepth)}
		}
		return p.parseList(tok, depth+1)
	case TokenDictionary:
		if depth+1 > p.maxDepth {
			return nil, &ParseError{Kind: ParseMaxDepthExceeded, Offset: tok.Offset,
				Detail: fmt.Sprintf("nesting exceeds %d", p.maxDepth)}
		}
		return p.parseDict(tok, depth+1)
	default: // TokenEnd
		return nil, &ParseError{Kind: ParseUnexpectedEnd, Offset: tok.Offset}
	}
}

// parseList consumes values until the matching END marker.
func (p *parser) parseList(open Token, depth int) (*BValue, error) {
	elems := []*BValue{}
	for {
		tok, ok := p.stream.next()
		if !ok {
			return nil, &ParseError{Kind: ParseUnterminatedList, Offset: open.Offset}
		}
		if tok.Type == TokenEnd {
			return List(elems...), nil
		}
		v, err := p.parseToken(tok, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
}

// parseDict consumes key/value pairs until the matching END marker.
// Keys must be byte strings; on duplicate keys the last write wins,
// matching the lenient behavior real-world torrents rely on. The
// canonical encoder removes the ambiguity on re-encode.
func (p *parser) parseDict(open Token, depth int) (*BValue, error) {
	entries := make(map[string]*BValue)
	for {
		key, ok := p.stream.next()
		if !ok {
			return nil, &ParseError{Kind: ParseUnterminatedDictionary, Offset: open.Offset}
		}
		if key.Type == TokenEnd {
			return Dict(entries), nil
		}
		if key.Type != TokenByteString {
			return nil, &ParseError{Kind: ParseInvalidDictionaryKey, Offset: key.Offset,
				Detail: fmt.Sprintf("key token is %s", key.Type)}
		}

		val, ok := p.stream.next()
		if !ok {
			return nil, &ParseError{Kind: ParseUnterminatedDictionary, Offset: open.Offset}
		}
		v, err := p.parseToken(val, depth)
		if err != nil {
			return nil, err
		}
		entries[string(key.Str)] = v
	}
}
