// Package service defines the interfaces between the application's layers.
package service

import (
	"context"
	"time"

	"github.com/dverduzco/monedero/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	WalletID  string
	// Search filters by substring of the description, case-insensitive.
	Search string
	Type   model.TransactionType
	Limit  int
	Offset int
}

// Storage defines the contract for the persistence layer. The suggestion
// engine never touches storage directly: callers fetch categories, rules and
// historical matches here and pass them in as plain values.
type Storage interface {
	// Wallet operations
	CreateWallet(ctx context.Context, wallet *model.Wallet) error
	GetWallets(ctx context.Context) ([]model.Wallet, error)
	GetWalletByName(ctx context.Context, name string) (*model.Wallet, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategories(ctx context.Context, walletID string) ([]model.Category, error)
	GetCategoriesByType(ctx context.Context, walletID string, categoryType model.TransactionType) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	// GetHistoricalMatches returns recent categorized transactions across all
	// wallets, most recent first, normalized for the classifier.
	GetHistoricalMatches(ctx context.Context, limit int) ([]model.HistoricalMatch, error)
	GetMonthSummary(ctx context.Context, walletID string, year int, month time.Month) (*MonthSummary, error)

	// Rule store operations
	GetRules(ctx context.Context) ([]model.Rule, error)
	AppendRule(ctx context.Context, rule *model.Rule) error

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context, walletID string) ([]model.Goal, error)
	AddToGoal(ctx context.Context, id int, amount float64) (*model.Goal, error)
	DeleteGoal(ctx context.Context, id int) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// MonthSummary aggregates a wallet's activity for a calendar month.
type MonthSummary struct {
	SpentByCategory map[string]float64
	TotalIncome     float64
	TotalExpenses   float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
