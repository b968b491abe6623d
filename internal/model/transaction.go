package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single income or expense entry in a wallet.
type Transaction struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
	WalletID  string
	Type      TransactionType
	// Description is the freeform text the suggestion engine classifies.
	Description string
	// CategoryName is kept denormalized so imported rows survive category
	// renames and deletions. CategoryID is set when the category exists.
	CategoryName string
	Account      string
	Notes        string
	Hash         string
	Amount       float64
	CategoryID   int
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f:%s:%s",
		t.WalletID,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Account)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// HistoricalMatch is a prior categorized transaction used to infer the
// category of a new one. The storage layer normalizes joined and denormalized
// category names into this single shape before it reaches the classifier.
type HistoricalMatch struct {
	Description string
	Category    string
	Type        TransactionType
	WalletID    string
}
