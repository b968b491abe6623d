package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
)

func newTestTransaction(walletID, description string, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		WalletID:    walletID,
		Type:        model.TypeExpense,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
}

func TestSaveTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	saved, err := store.SaveTransactions(ctx, []model.Transaction{
		newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, date),
		newTestTransaction(wallet.ID, "UBER TRIP", 120.00, date),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	got, err := store.GetTransactions(ctx, service.TransactionFilter{WalletID: wallet.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSaveTransactions_DeduplicatesByHash(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	first := newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, date)

	saved, err := store.SaveTransactions(ctx, []model.Transaction{first})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	// Same wallet, date, amount, description, account: same hash, even with
	// a fresh ID. Re-importing the same bank file must not duplicate rows.
	duplicate := newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, date)
	saved, err = store.SaveTransactions(ctx, []model.Transaction{duplicate})
	require.NoError(t, err)
	assert.Equal(t, 0, saved)

	got, err := store.GetTransactions(ctx, service.TransactionFilter{WalletID: wallet.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveTransactions_Invalid(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	_, err := store.SaveTransactions(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	_, err = store.SaveTransactions(ctx, []model.Transaction{})
	assert.ErrorIs(t, err, ErrEmptySlice)

	bad := newTestTransaction(wallet.ID, "gratis", 0, time.Now())
	_, err = store.SaveTransactions(ctx, []model.Transaction{bad})
	assert.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestGetTransactions_Filters(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)
	other := newTestWallet(t, store, "Estudio", model.WalletTypeBusiness)

	june := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	july := time.Date(2025, 7, 10, 0, 0, 0, 0, time.Local)

	income := newTestTransaction(wallet.ID, "pago mural centro", 5000, june)
	income.Type = model.TypeIncome

	_, err := store.SaveTransactions(ctx, []model.Transaction{
		newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, june),
		newTestTransaction(wallet.ID, "UBER TRIP", 120.00, july),
		income,
		newTestTransaction(other.ID, "Home Depot brochas", 430.00, june),
	})
	require.NoError(t, err)

	byWallet, err := store.GetTransactions(ctx, service.TransactionFilter{WalletID: wallet.ID})
	require.NoError(t, err)
	assert.Len(t, byWallet, 3)

	byType, err := store.GetTransactions(ctx, service.TransactionFilter{
		WalletID: wallet.ID, Type: model.TypeIncome,
	})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "pago mural centro", byType[0].Description)

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	byDate, err := store.GetTransactions(ctx, service.TransactionFilter{
		WalletID: wallet.ID, StartDate: &start,
	})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "UBER TRIP", byDate[0].Description)

	bySearch, err := store.GetTransactions(ctx, service.TransactionFilter{Search: "oxxo"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "OXXO POLANCO", bySearch[0].Description)

	limited, err := store.GetTransactions(ctx, service.TransactionFilter{
		WalletID: wallet.ID, Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetTransactions_ResolvesCategoryName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	cat, err := store.CreateCategory(ctx, &model.Category{
		WalletID: wallet.ID, Name: "Comida", Type: model.TypeExpense,
	})
	require.NoError(t, err)

	linked := newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, time.Now())
	linked.CategoryID = cat.ID
	linked.CategoryName = "stale name"

	denormalized := newTestTransaction(wallet.ID, "pago viejo", 40, time.Now())
	denormalized.CategoryName = "Antojos"

	_, err = store.SaveTransactions(ctx, []model.Transaction{linked, denormalized})
	require.NoError(t, err)

	got, err := store.GetTransactions(ctx, service.TransactionFilter{WalletID: wallet.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byDescription := make(map[string]model.Transaction)
	for _, txn := range got {
		byDescription[txn.Description] = txn
	}

	// A category link wins over the denormalized name; without a link the
	// denormalized name survives.
	assert.Equal(t, "Comida", byDescription["OXXO POLANCO"].CategoryName)
	assert.Equal(t, "Antojos", byDescription["pago viejo"].CategoryName)
}

func TestGetHistoricalMatches(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)
	other := newTestWallet(t, store, "Estudio", model.WalletTypeBusiness)

	older := newTestTransaction(wallet.ID, "gym smartfit", 499, time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local))
	older.CategoryName = "Salud"

	newer := newTestTransaction(other.ID, "gym smartfit", 499, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local))
	newer.CategoryName = "Bienestar"

	uncategorized := newTestTransaction(wallet.ID, "cargo desconocido", 100, time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local))

	_, err := store.SaveTransactions(ctx, []model.Transaction{older, newer, uncategorized})
	require.NoError(t, err)

	matches, err := store.GetHistoricalMatches(ctx, 0)
	require.NoError(t, err)

	// Uncategorized rows never make it into history, and recent rows come
	// first so the classifier prefers the latest teaching.
	require.Len(t, matches, 2)
	assert.Equal(t, "Bienestar", matches[0].Category)
	assert.Equal(t, other.ID, matches[0].WalletID)
	assert.Equal(t, "Salud", matches[1].Category)
}

func TestGetHistoricalMatches_Limit(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	var batch []model.Transaction
	for i := 0; i < 5; i++ {
		txn := newTestTransaction(wallet.ID, "compra", float64(10+i), time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.Local))
		txn.CategoryName = "Comida"
		batch = append(batch, txn)
	}
	_, err := store.SaveTransactions(ctx, batch)
	require.NoError(t, err)

	matches, err := store.GetHistoricalMatches(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestGetMonthSummary(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	wallet := newTestWallet(t, store, "Personal", model.WalletTypePersonal)

	june := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	food := newTestTransaction(wallet.ID, "OXXO POLANCO", 85.50, june)
	food.CategoryName = "Comida"
	moreFood := newTestTransaction(wallet.ID, "tacos el pastor", 120, june)
	moreFood.CategoryName = "Comida"
	unclassified := newTestTransaction(wallet.ID, "cargo desconocido", 50, june)
	pay := newTestTransaction(wallet.ID, "pago mural", 3000, june)
	pay.Type = model.TypeIncome
	outOfMonth := newTestTransaction(wallet.ID, "compra julio", 999, june.AddDate(0, 1, 0))

	_, err := store.SaveTransactions(ctx, []model.Transaction{food, moreFood, unclassified, pay, outOfMonth})
	require.NoError(t, err)

	summary, err := store.GetMonthSummary(ctx, wallet.ID, 2025, time.June)
	require.NoError(t, err)

	assert.InDelta(t, 3000, summary.TotalIncome, 0.001)
	assert.InDelta(t, 255.50, summary.TotalExpenses, 0.001)
	assert.InDelta(t, 205.50, summary.SpentByCategory["Comida"], 0.001)
	assert.InDelta(t, 50, summary.SpentByCategory[model.FallbackCategory], 0.001)
}
