package model

// FallbackCategory is the sentinel category returned when no rule source
// matched a description.
const FallbackCategory = "Por Clasificar"

// Suggestion is the result of classifying a transaction description. It is a
// value, never persisted.
type Suggestion struct {
	// Category is the suggested category name. It may be empty for the
	// category-agnostic income keywords when the wallet has no income
	// category to resolve against.
	Category string
	Type     TransactionType
	// WalletID is set only when the suggestion was inherited from a
	// historical match in a different wallet, as a hint for cross-wallet
	// entry.
	WalletID string
	// IsFallback is true only when no user rule, historical match, or
	// built-in keyword matched. It is a routine outcome, not an error.
	IsFallback bool
}

// FallbackSuggestion returns the fixed result for unclassifiable input.
func FallbackSuggestion() Suggestion {
	return Suggestion{
		Category:   FallbackCategory,
		Type:       TypeExpense,
		IsFallback: true,
	}
}
