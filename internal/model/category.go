package model

import "time"

// TransactionType indicates whether money flows in or out.
type TransactionType string

const (
	// TypeIncome represents incoming money.
	TypeIncome TransactionType = "income"
	// TypeExpense represents outgoing money.
	TypeExpense TransactionType = "expense"
)

// Category represents a named, typed classification bucket for transactions.
// Names are unique within a wallet and type pair.
type Category struct {
	CreatedAt time.Time
	WalletID  string
	Name      string
	Icon      string
	Type      TransactionType
	ID        int
	IsActive  bool
}
