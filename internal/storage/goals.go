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

// CreateGoal creates a new savings goal in a wallet.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (wallet_id, name, icon, target_amount, saved_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.WalletID, goal.Name, goal.Icon, goal.TargetAmount, goal.SavedAmount, goal.Deadline, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get goal ID: %w", err)
	}

	goal.ID = int(id)
	goal.CreatedAt = now

	slog.Info("created goal", "name", goal.Name, "target", goal.TargetAmount)
	return nil
}

// GetGoals returns a wallet's savings goals.
func (s *SQLiteStorage) GetGoals(ctx context.Context, walletID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(walletID, "walletID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, wallet_id, name, icon, target_amount, saved_amount, deadline, created_at
		FROM goals
		WHERE wallet_id = ?
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var deadline sql.NullTime
		if err := rows.Scan(&g.ID, &g.WalletID, &g.Name, &g.Icon, &g.TargetAmount, &g.SavedAmount, &deadline, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if deadline.Valid {
			g.Deadline = &deadline.Time
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// AddToGoal adds an amount to a goal's saved total and returns the updated
// goal. Negative amounts withdraw, but never below zero.
func (s *SQLiteStorage) AddToGoal(ctx context.Context, id int, amount float64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET saved_amount = MAX(0, saved_amount + ?)
		WHERE id = ?`, amount, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("goal %d: %w", id, common.ErrNotFound)
	}

	var g model.Goal
	var deadline sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		SELECT id, wallet_id, name, icon, target_amount, saved_amount, deadline, created_at
		FROM goals WHERE id = ?`, id).Scan(
		&g.ID, &g.WalletID, &g.Name, &g.Icon, &g.TargetAmount, &g.SavedAmount, &deadline, &g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reload goal: %w", err)
	}
	if deadline.Valid {
		g.Deadline = &deadline.Time
	}

	slog.Info("updated goal", "name", g.Name, "saved", g.SavedAmount)
	return &g, nil
}

// DeleteGoal removes a goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("goal %d: %w", id, common.ErrNotFound)
	}

	return nil
}
