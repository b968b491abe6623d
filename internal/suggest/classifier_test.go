package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverduzco/monedero/internal/model"
)

func TestClassifier_Classify_EmptyInput(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}
	rules := []model.Rule{{Keywords: []string{"oxxo"}, Category: "Comida"}}
	history := []model.HistoricalMatch{{Description: "oxxo", Category: "Comida", Type: model.TypeExpense}}

	for _, input := range []string{"", "   ", "\t\n"} {
		got := c.Classify(input, categories, rules, history)
		assert.Equal(t, model.FallbackCategory, got.Category, "input %q", input)
		assert.Equal(t, model.TypeExpense, got.Type, "input %q", input)
		assert.True(t, got.IsFallback, "input %q", input)
	}
}

func TestClassifier_Classify_Deterministic(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{
		{Name: "Comida", Type: model.TypeExpense},
		{Name: "Transporte", Type: model.TypeExpense},
	}
	rules := []model.Rule{{Keywords: []string{"rappi"}, Category: "Comida"}}
	history := []model.HistoricalMatch{{Description: "Uber viaje", Category: "Transporte", Type: model.TypeExpense}}

	first := c.Classify("Uber viaje", categories, rules, history)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify("Uber viaje", categories, rules, history))
	}
}

func TestClassifier_Classify_UserRulePrecedence(t *testing.T) {
	c := NewClassifier(DefaultTable())

	// A taught rule for "uber" beats the built-in Transporte entry for the
	// same keyword.
	categories := []model.Category{
		{Name: "Transport de lujo", Type: model.TypeExpense},
		{Name: "Transporte", Type: model.TypeExpense},
	}
	rules := []model.Rule{{Keywords: []string{"uber"}, Category: "Transport de lujo"}}

	got := c.Classify("Uber viaje", categories, rules, nil)
	assert.Equal(t, "Transport de lujo", got.Category)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_RuleOrderIsPrecedence(t *testing.T) {
	c := NewClassifier(nil)

	categories := []model.Category{
		{Name: "Antojos", Type: model.TypeExpense},
		{Name: "Despensa", Type: model.TypeExpense},
	}
	rules := []model.Rule{
		{Keywords: []string{"oxxo"}, Category: "Antojos"},
		{Keywords: []string{"oxxo"}, Category: "Despensa"},
	}

	// First matching rule wins: the older rule takes precedence.
	got := c.Classify("oxxo gatorade", categories, rules, nil)
	assert.Equal(t, "Antojos", got.Category)
}

func TestClassifier_Classify_RuleMultiKeyword(t *testing.T) {
	c := NewClassifier(nil)

	// Any keyword in the sequence matches, not just the first one.
	categories := []model.Category{{Name: "Antojos", Type: model.TypeExpense}}
	rules := []model.Rule{{Keywords: []string{"oxxo", "seven"}, Category: "Antojos"}}

	got := c.Classify("seven gatorade", categories, rules, nil)
	assert.Equal(t, "Antojos", got.Category)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_RuleTypeOverride(t *testing.T) {
	c := NewClassifier(nil)

	categories := []model.Category{{Name: "Freelance", Type: model.TypeExpense}}
	rules := []model.Rule{{Keywords: []string{"mural"}, Category: "Freelance", Type: model.TypeIncome}}

	got := c.Classify("mural centro", categories, rules, nil)
	assert.Equal(t, "Freelance", got.Category)
	assert.Equal(t, model.TypeIncome, got.Type)
}

func TestClassifier_Classify_TypeOnlyRule(t *testing.T) {
	c := NewClassifier(nil)

	categories := []model.Category{
		{Name: "Gastos", Type: model.TypeExpense},
		{Name: "Ingresos", Type: model.TypeIncome},
	}
	rules := []model.Rule{{Keywords: []string{"nomina"}, Type: model.TypeIncome}}

	got := c.Classify("nomina quincena", categories, rules, nil)
	assert.Equal(t, "Ingresos", got.Category)
	assert.Equal(t, model.TypeIncome, got.Type)
	assert.False(t, got.IsFallback)

	// With no income category, the rule still carries the type.
	got = c.Classify("nomina quincena", []model.Category{{Name: "Gastos", Type: model.TypeExpense}}, rules, nil)
	assert.Empty(t, got.Category)
	assert.Equal(t, model.TypeIncome, got.Type)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_UnresolvableRuleSkipped(t *testing.T) {
	c := NewClassifier(nil)

	// The rule's category is not in the wallet, so the rule is skipped and
	// the next source gets a chance.
	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}
	rules := []model.Rule{{Keywords: []string{"oxxo"}, Category: "Antojos"}}
	history := []model.HistoricalMatch{{Description: "oxxo despensa", Category: "Comida", Type: model.TypeExpense, WalletID: "w1"}}

	got := c.Classify("oxxo despensa", categories, rules, history)
	assert.Equal(t, "Comida", got.Category)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_MalformedRulesInert(t *testing.T) {
	c := NewClassifier(nil)

	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}
	rules := []model.Rule{
		{Keywords: nil, Category: "Comida"},
		{Keywords: []string{""}, Category: "Comida"},
		{Keywords: []string{"oxxo"}},
	}

	got := c.Classify("oxxo despensa", categories, rules, nil)
	assert.True(t, got.IsFallback)
}

func TestClassifier_Classify_HistoryBeatsBuiltin(t *testing.T) {
	c := NewClassifier(DefaultTable())

	// "gym" is a built-in Personal keyword, but an exact historical match
	// takes precedence.
	categories := []model.Category{
		{Name: "Wellness", Type: model.TypeExpense},
		{Name: "Personal", Type: model.TypeExpense},
	}
	history := []model.HistoricalMatch{
		{Description: "monthly gym fee", Category: "Wellness", Type: model.TypeExpense, WalletID: "w1"},
	}

	got := c.Classify("monthly gym fee", categories, nil, history)
	assert.Equal(t, "Wellness", got.Category)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_HistoryExactEqualityOnly(t *testing.T) {
	c := NewClassifier(nil)

	// Historical matching is exact equality, not substring containment.
	history := []model.HistoricalMatch{
		{Description: "oxxo", Category: "Comida", Type: model.TypeExpense},
	}

	got := c.Classify("oxxo despensa", nil, nil, history)
	assert.True(t, got.IsFallback)
}

func TestClassifier_Classify_HistoryRecencyOrder(t *testing.T) {
	c := NewClassifier(nil)

	// History arrives most-recent-first; the first valid entry wins.
	history := []model.HistoricalMatch{
		{Description: "netflix", Category: "", Type: model.TypeExpense},
		{Description: "netflix", Category: "Entretenimiento", Type: model.TypeExpense, WalletID: "w2"},
		{Description: "netflix", Category: "Suscripciones", Type: model.TypeExpense, WalletID: "w1"},
	}

	got := c.Classify("Netflix", nil, nil, history)
	assert.Equal(t, "Entretenimiento", got.Category)
	assert.Equal(t, "w2", got.WalletID, "wallet hint carried for cross-wallet suggestions")
}

func TestClassifier_Classify_HistoryUnresolvedReturnsRawName(t *testing.T) {
	c := NewClassifier(nil)

	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}
	history := []model.HistoricalMatch{
		{Description: "tlapaleria", Category: "Hogar", Type: model.TypeExpense, WalletID: "w9"},
	}

	got := c.Classify("tlapaleria", categories, nil, history)
	assert.Equal(t, "Hogar", got.Category)
	assert.Equal(t, "w9", got.WalletID)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_BuiltinTable(t *testing.T) {
	c := NewClassifier(DefaultTable())

	tests := []struct {
		name         string
		description  string
		categories   []model.Category
		wantCategory string
		wantType     model.TransactionType
	}{
		{
			name:         "oxxo resolves to wallet food category",
			description:  "Oxxo despensa",
			categories:   []model.Category{{Name: "Comida", Type: model.TypeExpense}},
			wantCategory: "Comida",
			wantType:     model.TypeExpense,
		},
		{
			name:         "unresolved builtin returns raw name as creation hint",
			description:  "farmacia similares",
			categories:   []model.Category{{Name: "Comida", Type: model.TypeExpense}},
			wantCategory: "Salud",
			wantType:     model.TypeExpense,
		},
		{
			name:        "income keyword resolves to wallet income category",
			description: "anticipo mural fachada",
			categories: []model.Category{
				{Name: "Gastos", Type: model.TypeExpense},
				{Name: "Ingresos", Type: model.TypeIncome},
			},
			wantCategory: "Ingresos",
			wantType:     model.TypeIncome,
		},
		{
			name:         "income keyword with no income category leaves name to caller",
			description:  "tatuaje brazo",
			categories:   []model.Category{{Name: "Gastos", Type: model.TypeExpense}},
			wantCategory: "",
			wantType:     model.TypeIncome,
		},
		{
			name:         "case and whitespace insensitive",
			description:  "  STARBUCKS  ",
			categories:   []model.Category{{Name: "Comida", Type: model.TypeExpense}},
			wantCategory: "Comida",
			wantType:     model.TypeExpense,
		},
		{
			name:         "type filter on resolution",
			description:  "renta estudio",
			categories:   []model.Category{{Name: "Renta", Type: model.TypeIncome}},
			wantCategory: "Renta",
			wantType:     model.TypeExpense,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.description, tt.categories, nil, nil)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantType, got.Type)
			assert.False(t, got.IsFallback)
		})
	}
}

func TestClassifier_Classify_CaseInsensitiveSameResult(t *testing.T) {
	c := NewClassifier(DefaultTable())
	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}

	assert.Equal(t,
		c.Classify("starbucks", categories, nil, nil),
		c.Classify("  STARBUCKS  ", categories, nil, nil))
}

func TestClassifier_Classify_Fallback(t *testing.T) {
	c := NewClassifier(DefaultTable())

	got := c.Classify("xyz123 unmatched nonsense", []model.Category{{Name: "Comida", Type: model.TypeExpense}}, nil, nil)
	assert.Equal(t, model.FallbackCategory, got.Category)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.True(t, got.IsFallback)
}

func TestClassifier_Classify_RuleBeatsBuiltinForSameKeyword(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{
		{Name: "Comida", Type: model.TypeExpense},
		{Name: "Antojos", Type: model.TypeExpense},
	}
	rules := []model.Rule{{Keywords: []string{"oxxo"}, Category: "Antojos", Type: model.TypeExpense}}

	got := c.Classify("Oxxo despensa", categories, rules, nil)
	assert.Equal(t, "Antojos", got.Category)
	assert.False(t, got.IsFallback)
}

func TestClassifier_Classify_CustomTable(t *testing.T) {
	// The table is injected at construction so callers can swap it out.
	table := []KeywordRule{
		{Category: "Cafeína", Type: model.TypeExpense, Keywords: []string{"cafe"}},
	}
	c := NewClassifier(table)

	got := c.Classify("cafe de olla", nil, nil, nil)
	require.False(t, got.IsFallback)
	assert.Equal(t, "Cafeína", got.Category)

	got = c.Classify("Oxxo despensa", nil, nil, nil)
	assert.True(t, got.IsFallback, "default table entries must not leak into custom tables")
}

func TestClassifier_Classify_SubstringContainment(t *testing.T) {
	c := NewClassifier(DefaultTable())

	// Keywords match inside longer words. Documented limitation of the
	// matching model, preserved on purpose.
	got := c.Classify("lecheria expo", []model.Category{{Name: "Bebé", Type: model.TypeExpense}}, nil, nil)
	assert.Equal(t, "Bebé", got.Category)
	assert.False(t, got.IsFallback)
}
