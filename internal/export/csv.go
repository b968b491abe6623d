// Package export writes transactions to portable file formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dverduzco/monedero/internal/model"
)

var csvHeader = []string{"date", "description", "category", "type", "amount", "account", "notes"}

// WriteCSV writes transactions as CSV, one row per transaction, with a
// header row. Uncategorized rows carry the fallback category name.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range transactions {
		category := txn.CategoryName
		if category == "" {
			category = model.FallbackCategory
		}

		record := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			category,
			string(txn.Type),
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Account,
			txn.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
