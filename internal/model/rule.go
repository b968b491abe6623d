package model

import (
	"strings"
	"time"
)

// Rule is a user-taught keyword-to-category mapping consulted before any
// historical or built-in match. Store order is precedence order: the first
// matching rule wins, and newly taught rules are appended at the end.
type Rule struct {
	CreatedAt time.Time
	// Category is the target category name. It may be empty when the rule
	// only signals a type.
	Category string
	// Type overrides the resolved category's type when set.
	Type     TransactionType
	Keywords []string
	ID       int
	Position int
}

// Matches reports whether any of the rule's keywords is contained in the
// normalized (lowercased, trimmed) description. Matching is pure substring
// containment, no tokenization or word boundaries. A rule with no keywords
// never matches.
func (r Rule) Matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
