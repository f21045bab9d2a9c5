package runtime

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aretw0/ali/pkg/domain"
)

var (
	dotRefPattern     = regexp.MustCompile(`^\.[A-Za-z0-9_?]+$`)
	colonRefPattern   = regexp.MustCompile(`^:[A-Za-z0-9_?]+$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:.\-]*$`)
	integerPattern    = regexp.MustCompile(`^[0-9]+$`)
)

const specialChars = "?@#!"

// Tokenize splits a raw command into tokens.
// Quoted spans keep their interior whitespace and lose their quotes.
// An unterminated quote falls back to a plain whitespace split.
func Tokenize(raw string) ([]domain.Token, error) {
	tokens, ok := splitQuoted(raw)
	if !ok {
		tokens = nil
		for _, field := range strings.Fields(raw) {
			tokens = append(tokens, domain.Token{Value: field, Raw: field, Kind: classify(field)})
		}
	}
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyCommand
	}
	return tokens, nil
}

// SplitVerb separates the uppercased verb from the remaining tokens.
func SplitVerb(tokens []domain.Token) (string, []domain.Token, error) {
	if len(tokens) == 0 {
		return "", nil, domain.ErrEmptyCommand
	}
	return strings.ToUpper(tokens[0].Value), tokens[1:], nil
}

func splitQuoted(raw string) ([]domain.Token, bool) {
	var (
		tokens  []domain.Token
		value   strings.Builder
		surface strings.Builder
		quote   rune
		started bool
		quoted  bool
	)

	flush := func() {
		if !started {
			return
		}
		tok := domain.Token{Value: value.String(), Raw: surface.String()}
		if quoted {
			tok.Kind = domain.TokenQuoted
		} else {
			tok.Kind = classify(tok.Value)
		}
		tokens = append(tokens, tok)
		value.Reset()
		surface.Reset()
		started, quoted = false, false
	}

	for _, r := range raw {
		switch {
		case quote != 0:
			surface.WriteRune(r)
			if r == quote {
				quote = 0
				continue
			}
			value.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started, quoted = true, true
			surface.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			started = true
			value.WriteRune(r)
			surface.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, false
	}
	flush()
	return tokens, true
}

func classify(s string) domain.TokenKind {
	switch {
	case len(s) == 1 && strings.Contains(specialChars, s):
		return domain.TokenSpecial
	case integerPattern.MatchString(s):
		return domain.TokenInteger
	case dotRefPattern.MatchString(s):
		return domain.TokenDotRef
	case colonRefPattern.MatchString(s):
		return domain.TokenColonRef
	case identifierPattern.MatchString(s):
		return domain.TokenIdentifier
	default:
		return domain.TokenWord
	}
}
