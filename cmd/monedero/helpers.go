package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/dverduzco/monedero/internal/common"
	"github.com/dverduzco/monedero/internal/config"
	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
	"github.com/dverduzco/monedero/internal/storage"
	"github.com/dverduzco/monedero/internal/suggest"
)

// historyLimit bounds how many recent categorized transactions feed the
// classifier's historical matching.
const historyLimit = 200

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/monedero/monedero.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveWallet picks the wallet named by --wallet (or config), falling back
// to the first wallet when none is named.
func resolveWallet(ctx context.Context, store service.Storage) (*model.Wallet, error) {
	name := viper.GetString("wallet")
	if name != "" {
		wallet, err := store.GetWalletByName(ctx, name)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("wallet %q not found", name), err)
		}
		return wallet, nil
	}

	wallets, err := store.GetWallets(ctx)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, common.NewUserError("no wallets yet, create one with 'monedero wallets add'", common.ErrNoWallet)
	}
	return &wallets[0], nil
}

// classifierInputs bundles everything the suggestion engine needs for one
// classification pass.
type classifierInputs struct {
	categories []model.Category
	rules      []model.Rule
	history    []model.HistoricalMatch
}

// loadClassifierInputs fetches the wallet's categories plus the global rule
// store and cross-wallet history.
func loadClassifierInputs(ctx context.Context, store service.Storage, walletID string) (*classifierInputs, error) {
	categories, err := store.GetCategories(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	rules, err := store.GetRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	history, err := store.GetHistoricalMatches(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return &classifierInputs{
		categories: categories,
		rules:      rules,
		history:    history,
	}, nil
}

func newClassifier() *suggest.Classifier {
	return suggest.NewClassifier(suggest.DefaultTable())
}
