// Package suggest implements the category suggestion engine: a rule-based
// classifier that assigns a category and transaction type to a freeform
// description, and the feedback loop that turns manual corrections into new
// persistent rules.
package suggest

import (
	"strings"

	"github.com/dverduzco/monedero/internal/model"
)

// Classifier assigns categories to transaction descriptions. Classification
// is a pure computation over the inputs supplied by the caller; the
// classifier performs no I/O and never creates categories.
type Classifier struct {
	table []KeywordRule
}

// NewClassifier creates a classifier with the given built-in keyword table.
// Most callers pass DefaultTable; tests inject their own.
func NewClassifier(table []KeywordRule) *Classifier {
	return &Classifier{table: table}
}

// Classify produces a best-guess category and type for a description.
// Sources are consulted in strict precedence order, first hit wins: user
// rules (store order), historical matches (recency order, exact description
// equality), then the built-in keyword table. When nothing matches the fixed
// fallback is returned with IsFallback set.
func (c *Classifier) Classify(description string, categories []model.Category, rules []model.Rule, history []model.HistoricalMatch) model.Suggestion {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return model.FallbackSuggestion()
	}

	if s, ok := c.matchUserRules(normalized, categories, rules); ok {
		return s
	}
	if s, ok := c.matchHistory(normalized, categories, history); ok {
		return s
	}
	if s, ok := c.matchKeywordTable(normalized, categories); ok {
		return s
	}

	return model.FallbackSuggestion()
}

// matchUserRules walks the rule store in order. A rule whose category does
// not resolve against the available categories is skipped rather than
// treated as a match; malformed rules are inert.
func (c *Classifier) matchUserRules(normalized string, categories []model.Category, rules []model.Rule) (model.Suggestion, bool) {
	for _, rule := range rules {
		if len(rule.Keywords) == 0 {
			continue
		}
		if rule.Category == "" && rule.Type == "" {
			continue
		}
		if !rule.Matches(normalized) {
			continue
		}

		if rule.Category == "" {
			// Type-only rule: resolve to the wallet's first category of that
			// type, or carry just the type.
			for _, cat := range categories {
				if cat.Type == rule.Type {
					return model.Suggestion{Category: cat.Name, Type: rule.Type}, true
				}
			}
			return model.Suggestion{Type: rule.Type}, true
		}

		cat, ok := findCategoryByName(categories, rule.Category)
		if !ok {
			continue
		}

		suggestedType := rule.Type
		if suggestedType == "" {
			suggestedType = cat.Type
		}
		return model.Suggestion{Category: cat.Name, Type: suggestedType}, true
	}
	return model.Suggestion{}, false
}

// matchHistory takes the first historical entry whose normalized description
// equals the input exactly and carries a non-empty category. The record's
// wallet is carried into the result as a cross-wallet hint.
func (c *Classifier) matchHistory(normalized string, categories []model.Category, history []model.HistoricalMatch) (model.Suggestion, bool) {
	for _, h := range history {
		if h.Category == "" {
			continue
		}
		if strings.ToLower(strings.TrimSpace(h.Description)) != normalized {
			continue
		}

		name := h.Category
		if cat, ok := findCategoryByName(categories, h.Category); ok {
			name = cat.Name
		}
		return model.Suggestion{
			Category: name,
			Type:     h.Type,
			WalletID: h.WalletID,
		}, true
	}
	return model.Suggestion{}, false
}

// matchKeywordTable walks the built-in table top to bottom. An unresolved
// category is returned raw so the caller can offer to create it.
func (c *Classifier) matchKeywordTable(normalized string, categories []model.Category) (model.Suggestion, bool) {
	for _, entry := range c.table {
		if !anyKeywordMatches(normalized, entry.Keywords) {
			continue
		}

		if entry.Category == "" {
			// Category-agnostic row: resolve to the wallet's own category
			// of the matching type when one exists.
			for _, cat := range categories {
				if cat.Type == entry.Type {
					return model.Suggestion{Category: cat.Name, Type: entry.Type}, true
				}
			}
			return model.Suggestion{Type: entry.Type}, true
		}

		for _, cat := range categories {
			if cat.Type == entry.Type && strings.EqualFold(cat.Name, entry.Category) {
				return model.Suggestion{Category: cat.Name, Type: entry.Type}, true
			}
		}
		return model.Suggestion{Category: entry.Category, Type: entry.Type}, true
	}
	return model.Suggestion{}, false
}

func anyKeywordMatches(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func findCategoryByName(categories []model.Category, name string) (model.Category, bool) {
	if name == "" {
		return model.Category{}, false
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return model.Category{}, false
}
