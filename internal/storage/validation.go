package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dverduzco/monedero/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidType        = errors.New("type must be income or expense")
	ErrInvalidWallet      = errors.New("invalid wallet")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidRule        = errors.New("invalid rule")
	ErrInvalidGoal        = errors.New("invalid goal")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateType ensures a transaction type is one of the two known values.
func validateType(t model.TransactionType) error {
	switch t {
	case model.TypeIncome, model.TypeExpense:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, t)
}

// validateWallet validates a wallet.
func validateWallet(wallet *model.Wallet) error {
	if wallet == nil {
		return fmt.Errorf("%w: wallet", ErrNilParameter)
	}
	if strings.TrimSpace(wallet.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidWallet)
	}
	switch wallet.Type {
	case model.WalletTypePersonal, model.WalletTypeBusiness:
	default:
		return fmt.Errorf("%w: unknown wallet type %q", ErrInvalidWallet, wallet.Type)
	}
	return nil
}

// validateCategory validates a category.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if category.WalletID == "" {
		return fmt.Errorf("%w: missing wallet", ErrInvalidCategory)
	}
	if err := validateType(category.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.WalletID == "" {
		return fmt.Errorf("%w: missing wallet", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if err := validateType(txn.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return nil
}

// validateRule validates a taught rule before it enters the store. Partial
// user data degrades classification, never crashes it, but the store refuses
// rules that could never match anything.
func validateRule(rule *model.Rule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	hasKeyword := false
	for _, kw := range rule.Keywords {
		if strings.TrimSpace(kw) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return fmt.Errorf("%w: missing keywords", ErrInvalidRule)
	}
	if rule.Category == "" && rule.Type == "" {
		return fmt.Errorf("%w: needs a category or a type", ErrInvalidRule)
	}
	if rule.Type != "" {
		if err := validateType(rule.Type); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
	}
	return nil
}

// validateGoal validates a savings goal.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if strings.TrimSpace(goal.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if goal.WalletID == "" {
		return fmt.Errorf("%w: missing wallet", ErrInvalidGoal)
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	return nil
}
