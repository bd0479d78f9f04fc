// Package rules implements the keyword matching engine deciding which
// channel posts get relayed.
package rules

import (
	"strings"

	"github.com/umputun/tg-relay/pkg/domain"
)

// Decision is the outcome of evaluating a post against keyword rules
type Decision struct {
	Forward bool
	Keyword string // matched keyword, empty on default-allow
}

// Reason describes the decision for audit records
func (d Decision) Reason() string {
	if !d.Forward {
		return "no match"
	}
	if d.Keyword == "" {
		return "default"
	}
	return "keyword: " + d.Keyword
}

// Decide evaluates post text against the configured keyword rules.
// With both keyword lists empty every post is relayed (default-allow).
// Otherwise prefix rules are tested in list order first, then substring
// rules in list order; the first hit wins. Matching is case-insensitive
// on both the rule and the text.
func Decide(text string, s *domain.Settings) Decision {
	if !s.HasKeywords() {
		return Decision{Forward: true}
	}

	lower := strings.ToLower(text)

	for _, kw := range s.KeywordInitial {
		if kw == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(kw)) {
			return Decision{Forward: true, Keyword: kw}
		}
	}

	for _, kw := range s.KeywordContain {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return Decision{Forward: true, Keyword: kw}
		}
	}

	return Decision{}
}
