package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverduzco/monedero/internal/model"
)

func TestProposeRule_DivergenceCreatesCandidate(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{
		{Name: "Comida", Type: model.TypeExpense},
		{Name: "Antojos", Type: model.TypeExpense},
	}

	// The classifier predicts Comida for "oxxo", but the user picked
	// Antojos, so a candidate rule is proposed.
	got := c.ProposeRule("Oxxo gatorade", "Antojos", model.TypeExpense, categories, nil, nil)
	require.NotNil(t, got)
	assert.Equal(t, "Antojos", got.Category)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.Equal(t, []string{"oxxo gatorade"}, got.Keywords)
}

func TestProposeRule_ConfirmationReturnsNil(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{{Name: "Comida", Type: model.TypeExpense}}

	// The user picked exactly what the classifier predicted; nothing to
	// teach.
	got := c.ProposeRule("Oxxo gatorade", "Comida", model.TypeExpense, categories, nil, nil)
	assert.Nil(t, got)
}

func TestProposeRule_FallbackPredictionStillTeaches(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{{Name: "Hogar", Type: model.TypeExpense}}

	got := c.ProposeRule("tlapaleria perez", "Hogar", model.TypeExpense, categories, nil, nil)
	require.NotNil(t, got)
	assert.Equal(t, "Hogar", got.Category)
	assert.Equal(t, []string{"tlapaleria perez"}, got.Keywords)
}

func TestProposeRule_DuplicateKeywordReturnsNil(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{
		{Name: "Comida", Type: model.TypeExpense},
		{Name: "Antojos", Type: model.TypeExpense},
	}
	// The pair already exists in the store even though its category does not
	// resolve right now (dedupe hardening beyond the observed behavior).
	rules := []model.Rule{{Keywords: []string{"oxxo gatorade"}, Category: "Dulces"}}

	got := c.ProposeRule("Oxxo gatorade", "Dulces", model.TypeExpense, categories, rules, nil)
	assert.Nil(t, got)
}

func TestProposeRule_EmptyInputs(t *testing.T) {
	c := NewClassifier(DefaultTable())

	assert.Nil(t, c.ProposeRule("", "Comida", model.TypeExpense, nil, nil, nil))
	assert.Nil(t, c.ProposeRule("   ", "Comida", model.TypeExpense, nil, nil, nil))
	assert.Nil(t, c.ProposeRule("oxxo", "", model.TypeExpense, nil, nil, nil))
}

func TestDeriveKeyword(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "short description used whole",
			description: "Oxxo gatorade",
			want:        "oxxo gatorade",
		},
		{
			name:        "short description trimmed and lowercased",
			description: "  CAFE NIN  ",
			want:        "cafe nin",
		},
		{
			name:        "long description uses first token",
			description: "Starbucks reforma con los del estudio",
			want:        "starbucks",
		},
		{
			name:        "nineteen runes is still whole",
			description: strings.Repeat("a", 17) + " b",
			want:        strings.Repeat("a", 17) + " b",
		},
		{
			name:        "twenty runes switches to first token",
			description: strings.Repeat("a", 18) + " b",
			want:        strings.Repeat("a", 18),
		},
		{
			name:        "empty",
			description: "   ",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveKeyword(tt.description))
		})
	}
}

func TestAppendRule_PreservesOrder(t *testing.T) {
	store := []model.Rule{
		{Keywords: []string{"oxxo"}, Category: "Antojos"},
		{Keywords: []string{"uber"}, Category: "Transporte"},
	}

	got := AppendRule(store, model.Rule{Keywords: []string{"didi"}, Category: "Transporte"})

	require.Len(t, got, 3)
	assert.Equal(t, "oxxo", got[0].Keywords[0])
	assert.Equal(t, "uber", got[1].Keywords[0])
	assert.Equal(t, "didi", got[2].Keywords[0])
	assert.Len(t, store, 2, "input store untouched")
}

func TestProposeRule_TaughtRuleChangesFutureClassification(t *testing.T) {
	c := NewClassifier(DefaultTable())

	categories := []model.Category{
		{Name: "Comida", Type: model.TypeExpense},
		{Name: "Antojos", Type: model.TypeExpense},
	}

	candidate := c.ProposeRule("Oxxo gatorade", "Antojos", model.TypeExpense, categories, nil, nil)
	require.NotNil(t, candidate)

	rules := AppendRule(nil, *candidate)
	got := c.Classify("oxxo gatorade y chicles", categories, rules, nil)
	assert.Equal(t, "Antojos", got.Category, "accepted rule applies to future classifications")
}
