package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dverduzco/monedero/internal/common"
	"github.com/dverduzco/monedero/internal/model"
)

// defaultCategories returns the category set seeded into a new wallet,
// depending on its type.
func defaultCategories(walletType model.WalletType) []model.Category {
	if walletType == model.WalletTypeBusiness {
		return []model.Category{
			{Name: "Ingresos", Icon: "💰", Type: model.TypeIncome},
			{Name: "Gastos", Icon: "📁", Type: model.TypeExpense},
		}
	}
	return []model.Category{
		{Name: "General", Icon: "📁", Type: model.TypeExpense},
		{Name: "Ingreso", Icon: "💰", Type: model.TypeIncome},
	}
}

// CreateWallet creates a new wallet and seeds its default category set.
func (s *SQLiteStorage) CreateWallet(ctx context.Context, wallet *model.Wallet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWallet(wallet); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (id, name, emoji, color, wallet_type, monthly_budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		wallet.ID, wallet.Name, wallet.Emoji, wallet.Color, wallet.Type, wallet.MonthlyBudget, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	for _, cat := range defaultCategories(wallet.Type) {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (wallet_id, name, icon, type, is_active, created_at)
			VALUES (?, ?, ?, ?, 1, ?)`,
			wallet.ID, cat.Name, cat.Icon, cat.Type, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wallet: %w", err)
	}

	wallet.CreatedAt = now
	slog.Info("created wallet", "name", wallet.Name, "type", wallet.Type)
	return nil
}

// GetWallets returns all wallets ordered by creation time.
func (s *SQLiteStorage) GetWallets(ctx context.Context) ([]model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, emoji, color, wallet_type, monthly_budget, created_at
		FROM wallets
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var wallets []model.Wallet
	for rows.Next() {
		var w model.Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Emoji, &w.Color, &w.Type, &w.MonthlyBudget, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}

	slog.Debug("retrieved wallets", "count", len(wallets))
	return wallets, nil
}

// GetWalletByName returns a wallet by its unique name.
func (s *SQLiteStorage) GetWalletByName(ctx context.Context, name string) (*model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, emoji, color, wallet_type, monthly_budget, created_at
		FROM wallets
		WHERE name = ?`

	var w model.Wallet
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&w.ID, &w.Name, &w.Emoji, &w.Color, &w.Type, &w.MonthlyBudget, &w.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wallet %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet: %w", err)
	}

	return &w, nil
}
