package suggest

import "github.com/dverduzco/monedero/internal/model"

// KeywordRule maps a set of merchant/service keywords to a category. The
// built-in table is consulted only after user rules and historical matches.
type KeywordRule struct {
	// Category is the target category name. An empty category with an income
	// type marks the category-agnostic income row: the wallet's own income
	// category is used when one exists.
	Category string
	Type     model.TransactionType
	Keywords []string
}

// DefaultTable returns the built-in keyword table, ordered top to bottom by
// precedence. The keywords encode Mexican-market vendors and services and are
// matched by plain substring containment on lowercased text, so table order
// matters: "gasolina" hits Transporte before "gas" can hit Servicios.
func DefaultTable() []KeywordRule {
	return []KeywordRule{
		{
			Category: "Suscripciones",
			Type:     model.TypeExpense,
			Keywords: []string{
				"icloud", "adobe", "midjourney", "canva", "spotify", "netflix",
				"chatgpt", "openai", "github", "figma", "notion", "hbo",
				"disney", "prime video", "youtube premium", "crunchyroll",
				"dropbox", "google one",
			},
		},
		{
			Category: "Transporte",
			Type:     model.TypeExpense,
			Keywords: []string{
				"uber", "didi", "gasolina", "estacionamiento", "taxi", "metro",
				"caseta", "peaje",
			},
		},
		{
			Category: "Comida",
			Type:     model.TypeExpense,
			Keywords: []string{
				"oxxo", "seven", "7-eleven", "soriana", "chedraui", "walmart",
				"la comer", "rappi", "uber eats", "didi food", "restaurante",
				"comida", "despensa", "starbucks",
			},
		},
		{
			Category: "Salud",
			Type:     model.TypeExpense,
			Keywords: []string{
				"farmacia", "doctor", "hospital", "salud", "dentista",
				"medicina", "clinica", "similares", "benavides",
				"farmacias guadalajara",
			},
		},
		{
			Category: "Servicios",
			Type:     model.TypeExpense,
			Keywords: []string{
				"cfe", "telmex", "izzi", "totalplay", "megacable", "agua",
				"gas", "luz", "internet", "telefono", "celular",
			},
		},
		{
			Category: "Personal",
			Type:     model.TypeExpense,
			Keywords: []string{
				"gym", "gimnasio", "smart fit", "zara", "shein", "ropa",
				"corte de pelo",
			},
		},
		{
			Category: "Mascotas",
			Type:     model.TypeExpense,
			Keywords: []string{"veterinario", "petco", "mascotas", "croquetas"},
		},
		{
			Category: "Bebé",
			Type:     model.TypeExpense,
			Keywords: []string{
				"pañales", "huggies", "bebe", "formula", "pediatra", "leche",
			},
		},
		{
			// Freelance art income. Category resolution defers to the
			// wallet's own income category.
			Category: "",
			Type:     model.TypeIncome,
			Keywords: []string{"pintura", "mural", "tatuaje", "diseño", "ilustracion"},
		},
		{
			Category: "Materiales",
			Type:     model.TypeExpense,
			Keywords: []string{"material", "lienzo", "pinceles", "tinta", "acrilico"},
		},
		{
			Category: "Renta",
			Type:     model.TypeExpense,
			Keywords: []string{"renta", "alquiler"},
		},
	}
}
