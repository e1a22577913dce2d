package bencode

// Stage identifies which pipeline stage produced a decode error.
type Stage uint8

const (
	StageLexer Stage = iota
	StageParser
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	default:
		return "unknown"
	}
}

// Error wraps a lexer or parser failure at the public Decode boundary,
// tagging which stage failed without coupling the stages' internals.
// The inner *LexError or *ParseError is reachable via errors.As.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return "bencode: " + e.Stage.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Decode tokenizes and parses a bencode buffer into a value tree.
// Input after the first complete value is ignored.
func Decode(data []byte) (*BValue, error) {
	return DecodeWithOptions(data, DefaultParseOptions())
}

// DecodeWithOptions decodes with an explicit parser configuration.
func DecodeWithOptions(data []byte, opts ParseOptions) (*BValue, error) {
	tokens, err := Tokenize(data)
	if err != nil {
		return nil, &Error{Stage: StageLexer, Err: err}
	}
	v, err := ParseWithOptions(tokens, opts)
	if err != nil {
		return nil, &Error{Stage: StageParser, Err: err}
	}
	return v, nil
}

// DecodeString decodes the byte representation of a string.
func DecodeString(s string) (*BValue, error) {
	return Decode([]byte(s))
}

// DecodeAll decodes a buffer of concatenated bencode values, such as
// a scrape response followed by trailing entries, returning every
// value in document order.
func DecodeAll(data []byte) ([]*BValue, error) {
	tokens, err := Tokenize(data)
	if err != nil {
		return nil, &Error{Stage: StageLexer, Err: err}
	}

	p := &parser{stream: &tokenStream{tokens: tokens}, maxDepth: DefaultMaxDepth}
	var values []*BValue
	for {
		tok, ok := p.stream.next()
		if !ok {
			return values, nil
		}
		v, err := p.parseToken(tok, 0)
		if err != nil {
			return nil, &Error{Stage: StageParser, Err: err}
		}
		values = append(values, v)
	}
}
