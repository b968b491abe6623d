// Package model defines the core data structures for the monedero application.
package model

import "time"

// WalletType distinguishes personal ledgers from business ones.
type WalletType string

const (
	// WalletTypePersonal represents a personal wallet.
	WalletTypePersonal WalletType = "personal"
	// WalletTypeBusiness represents a business wallet.
	WalletTypeBusiness WalletType = "business"
)

// Wallet is a user-defined account/ledger scope partitioning categories and
// transactions.
type Wallet struct {
	CreatedAt     time.Time
	ID            string
	Name          string
	Emoji         string
	Color         string
	Type          WalletType
	MonthlyBudget float64
}
