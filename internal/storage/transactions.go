package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
)

// SaveTransactions stores a batch of transactions atomically, skipping rows
// whose hash already exists. Returns the number of rows actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, wallet_id, type, amount, description,
			category_id, category_name, account, notes, date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	saved := 0
	for i := range transactions {
		txn := &transactions[i]
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		var categoryID any
		if txn.CategoryID != 0 {
			categoryID = txn.CategoryID
		}

		result, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.WalletID, txn.Type, txn.Amount, txn.Description,
			categoryID, txn.CategoryName, txn.Account, txn.Notes, txn.Date, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		saved += int(rowsAffected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("saved transactions", "total", len(transactions), "inserted", saved)
	return saved, nil
}

// GetTransactions returns transactions matching the filter, most recent first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.WalletID != "" {
		conditions = append(conditions, "t.wallet_id = ?")
		args = append(args, filter.WalletID)
	}
	if filter.Type != "" {
		conditions = append(conditions, "t.type = ?")
		args = append(args, filter.Type)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "t.date < ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Search != "" {
		conditions = append(conditions, "LOWER(t.description) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := `
		SELECT t.id, t.hash, t.wallet_id, t.type, t.amount, t.description,
			t.category_id, COALESCE(c.name, t.category_name, ''), t.account, t.notes,
			t.date, t.created_at
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date DESC, t.created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var categoryID sql.NullInt64
		if err := rows.Scan(
			&txn.ID, &txn.Hash, &txn.WalletID, &txn.Type, &txn.Amount, &txn.Description,
			&categoryID, &txn.CategoryName, &txn.Account, &txn.Notes,
			&txn.Date, &txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.CategoryID = int(categoryID.Int64)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// GetHistoricalMatches returns recent categorized transactions across all
// wallets, most recent first. Joined category names and the denormalized
// fallback are normalized into one shape here so the classifier never sees
// the difference.
func (s *SQLiteStorage) GetHistoricalMatches(ctx context.Context, limit int) ([]model.HistoricalMatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}

	query := `
		SELECT t.description, COALESCE(c.name, t.category_name, ''), t.type, t.wallet_id
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.description != ''
			AND COALESCE(c.name, t.category_name, '') != ''
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []model.HistoricalMatch
	for rows.Next() {
		var m model.HistoricalMatch
		if err := rows.Scan(&m.Description, &m.Category, &m.Type, &m.WalletID); err != nil {
			return nil, fmt.Errorf("failed to scan historical match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating historical matches: %w", err)
	}

	slog.Debug("retrieved historical matches", "count", len(matches))
	return matches, nil
}

// GetMonthSummary aggregates a wallet's income and expenses for a calendar
// month, with expenses broken down by category.
func (s *SQLiteStorage) GetMonthSummary(ctx context.Context, walletID string, year int, month time.Month) (*service.MonthSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(walletID, "walletID"); err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT t.type, COALESCE(c.name, t.category_name, ''), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.wallet_id = ? AND t.date >= ? AND t.date < ?
		GROUP BY t.type, COALESCE(c.name, t.category_name, '')`

	rows, err := s.db.QueryContext(ctx, query, walletID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query month summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := &service.MonthSummary{
		SpentByCategory: make(map[string]float64),
	}
	for rows.Next() {
		var txType model.TransactionType
		var category string
		var total float64
		if err := rows.Scan(&txType, &category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		switch txType {
		case model.TypeIncome:
			summary.TotalIncome += total
		case model.TypeExpense:
			summary.TotalExpenses += total
			if category == "" {
				category = model.FallbackCategory
			}
			summary.SpentByCategory[category] += total
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return summary, nil
}
