package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/dverduzco/monedero/internal/model"
)

// keywordTokenThreshold is the description length at which keyword derivation
// switches from the whole description to its first token. Short strings are
// usually already a specific merchant name; longer ones are sentences whose
// first word is the salient token.
const keywordTokenThreshold = 20

// ProposeRule compares the user's explicit category choice against what the
// classifier would have predicted for the same inputs. When they diverge it
// returns a candidate rule mapping the description's keyword to the chosen
// category; when the user simply confirmed the prediction it returns nil.
//
// The candidate is never persisted here. The caller must present it to the
// user and append it to the rule store only on explicit acceptance.
func (c *Classifier) ProposeRule(description, chosenCategory string, txType model.TransactionType, categories []model.Category, rules []model.Rule, history []model.HistoricalMatch) *model.Rule {
	if strings.TrimSpace(description) == "" || chosenCategory == "" {
		return nil
	}

	predicted := c.Classify(description, categories, rules, history)
	if strings.EqualFold(predicted.Category, chosenCategory) {
		return nil
	}

	keyword := DeriveKeyword(description)
	if keyword == "" {
		return nil
	}

	// Teaching the same keyword→category pair twice adds nothing.
	if hasRule(rules, keyword, chosenCategory) {
		return nil
	}

	return &model.Rule{
		Keywords: []string{keyword},
		Category: chosenCategory,
		Type:     txType,
	}
}

// DeriveKeyword extracts the rule keyword from a description: the whole
// lowercased description when it is shorter than 20 characters, otherwise
// only its first whitespace-delimited token.
func DeriveKeyword(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}
	if utf8.RuneCountInString(trimmed) < keywordTokenThreshold {
		return strings.ToLower(trimmed)
	}
	return strings.ToLower(strings.Fields(trimmed)[0])
}

// AppendRule returns the store with the rule appended at the end, preserving
// all existing order. No deduplication or merging happens here.
func AppendRule(store []model.Rule, rule model.Rule) []model.Rule {
	out := make([]model.Rule, 0, len(store)+1)
	out = append(out, store...)
	return append(out, rule)
}

func hasRule(rules []model.Rule, keyword, category string) bool {
	for _, rule := range rules {
		if !strings.EqualFold(rule.Category, category) {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.EqualFold(kw, keyword) {
				return true
			}
		}
	}
	return false
}
