package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dverduzco/monedero/internal/model"
)

// GetRules returns the full rule store in precedence order: position
// ascending, so rules taught earlier win over later ones.
func (s *SQLiteStorage) GetRules(ctx context.Context) ([]model.Rule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, keywords, category, type, position, created_at
		FROM rules
		ORDER BY position ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.Rule
	for rows.Next() {
		var rule model.Rule
		var keywords string
		var category, ruleType sql.NullString
		if err := rows.Scan(&rule.ID, &keywords, &category, &ruleType, &rule.Position, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}

		if err := json.Unmarshal([]byte(keywords), &rule.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for rule %d: %w", rule.ID, err)
		}
		rule.Category = category.String
		rule.Type = model.TransactionType(ruleType.String)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	slog.Debug("retrieved rules", "count", len(rules))
	return rules, nil
}

// AppendRule durably appends a rule at the end of the store. Existing order
// is never touched, so subsequent sessions see the same precedence.
func (s *SQLiteStorage) AppendRule(ctx context.Context, rule *model.Rule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	keywords, err := json.Marshal(rule.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	var category, ruleType any
	if rule.Category != "" {
		category = rule.Category
	}
	if rule.Type != "" {
		ruleType = string(rule.Type)
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO rules (keywords, category, type, position, created_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM rules), ?)`,
		string(keywords), category, ruleType, now,
	)
	if err != nil {
		return fmt.Errorf("failed to append rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}

	rule.ID = int(id)
	rule.CreatedAt = now

	slog.Info("appended rule", "keywords", rule.Keywords, "category", rule.Category)
	return nil
}
