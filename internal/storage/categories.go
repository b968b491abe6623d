package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dverduzco/monedero/internal/model"
)

// CreateCategory creates a new category in a wallet, reactivating a
// previously deleted one with the same name and type if it exists.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	// Check if the category already exists, including inactive ones
	existingQuery := `
		SELECT id, wallet_id, name, icon, type, is_active, created_at
		FROM categories
		WHERE wallet_id = ? AND name = ? AND type = ?`

	var existing model.Category
	err := s.db.QueryRowContext(ctx, existingQuery, category.WalletID, category.Name, category.Type).Scan(
		&existing.ID, &existing.WalletID, &existing.Name, &existing.Icon,
		&existing.Type, &existing.IsActive, &existing.CreatedAt,
	)

	if err == nil {
		if !existing.IsActive {
			updateQuery := `UPDATE categories SET is_active = 1 WHERE id = ?`
			if _, err := s.db.ExecContext(ctx, updateQuery, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reactivate category: %w", err)
			}
			existing.IsActive = true
			slog.Info("reactivated existing category", "name", existing.Name, "wallet", existing.WalletID)
		}
		return &existing, nil
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	now := time.Now()
	insertQuery := `
		INSERT INTO categories (wallet_id, name, icon, type, is_active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`

	result, err := s.db.ExecContext(ctx, insertQuery,
		category.WalletID, category.Name, category.Icon, category.Type, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	created := *category
	created.ID = int(id)
	created.IsActive = true
	created.CreatedAt = now

	slog.Info("created category", "name", created.Name, "type", created.Type, "wallet", created.WalletID)
	return &created, nil
}

// GetCategories returns all active categories in a wallet.
func (s *SQLiteStorage) GetCategories(ctx context.Context, walletID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(walletID, "walletID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, wallet_id, name, icon, type, is_active, created_at
		FROM categories
		WHERE wallet_id = ? AND is_active = 1
		ORDER BY type, name`

	return s.queryCategories(ctx, query, walletID)
}

// GetCategoriesByType returns a wallet's active categories of one type.
func (s *SQLiteStorage) GetCategoriesByType(ctx context.Context, walletID string, categoryType model.TransactionType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(walletID, "walletID"); err != nil {
		return nil, err
	}
	if err := validateType(categoryType); err != nil {
		return nil, err
	}

	query := `
		SELECT id, wallet_id, name, icon, type, is_active, created_at
		FROM categories
		WHERE wallet_id = ? AND type = ? AND is_active = 1
		ORDER BY name`

	return s.queryCategories(ctx, query, walletID, categoryType)
}

// DeleteCategory soft-deletes a category. Transactions keep their
// denormalized category name.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE categories SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d not found", id)
	}

	slog.Info("deleted category", "id", id)
	return nil
}

func (s *SQLiteStorage) queryCategories(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.WalletID, &cat.Name, &cat.Icon, &cat.Type, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}
