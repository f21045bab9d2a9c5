package domain

// TokenKind is the lexical class the tokenizer assigned to a token.
type TokenKind int

const (
	TokenWord       TokenKind = iota // Anything not covered by a narrower class
	TokenQuoted                      // "..." or '...' with quotes stripped
	TokenSpecial                     // ? @ # !
	TokenDotRef                      // .1, .THIS
	TokenColonRef                    // :1, :main
	TokenIdentifier                  // PANE, session:1.2, my-name
	TokenInteger                     // 42
)

func (k TokenKind) String() string {
	switch k {
	case TokenQuoted:
		return "quoted"
	case TokenSpecial:
		return "special"
	case TokenDotRef:
		return "dot-ref"
	case TokenColonRef:
		return "colon-ref"
	case TokenIdentifier:
		return "identifier"
	case TokenInteger:
		return "integer"
	default:
		return "word"
	}
}

// Token is one element of a tokenized command.
type Token struct {
	// Value is the token text with surrounding quotes removed.
	Value string
	// Raw is the surface form as typed, quotes included.
	Raw  string
	Kind TokenKind
}

// TokenValues returns the plain values of tokens.
func TokenValues(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}
