package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

// Mask replaces every redacted value.
const Mask = "***"

// DefaultSecretPatterns matches the usual names of credentials in
// environment variables and command fields.
var DefaultSecretPatterns = []string{
	`(?i)pass(word|wd)?`,
	`(?i)secret`,
	`(?i)token`,
	`(?i)api_?key`,
	`(?i)credential`,
}

type piiMiddleware struct {
	next     ports.HistoryStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks captured environment
// variables and fields whose names match one of the patterns.
// It panics if a pattern does not compile.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.HistoryStore) ports.HistoryStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Append(ctx context.Context, entry domain.HistoryEntry) error {
	// Copies keep the caller's entry untouched.
	if entry.Env != nil {
		env := make(map[string]string, len(entry.Env))
		for k, v := range entry.Env {
			if matchAny(k, m.patterns) {
				v = Mask
			}
			env[k] = v
		}
		entry.Env = env
	}
	if entry.Fields != nil {
		fields := entry.Fields.Clone()
		maskMap(fields, m.patterns)
		entry.Fields = fields
	}
	return m.next.Append(ctx, entry)
}

func (m *piiMiddleware) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	return m.next.Recent(ctx, limit)
}

// maskMap masks m in place. Nested maps are copied before they are masked.
func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		if matchAny(k, patterns) {
			m[k] = Mask
			continue
		}
		if subMap, ok := v.(map[string]any); ok {
			copied := make(map[string]any, len(subMap))
			for sk, sv := range subMap {
				copied[sk] = sv
			}
			maskMap(copied, patterns)
			m[k] = copied
		}
	}
}

func matchAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
