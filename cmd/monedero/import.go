package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/ofx"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank. Each
row is auto-categorized by the suggestion engine; re-importing the same file
is safe, duplicates are skipped by hash.

Examples:
  monedero import ~/Descargas/bbva_junio.ofx
  monedero import ~/Descargas/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						files = append(files, pattern)
					} else {
						slog.Warn("no files match pattern", "pattern", pattern)
					}
				} else {
					files = append(files, matches...)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallet, err := resolveWallet(ctx, store)
			if err != nil {
				return err
			}

			inputs, err := loadClassifierInputs(ctx, store, wallet.ID)
			if err != nil {
				return err
			}
			classifier := newClassifier()

			parser := ofx.NewParser()
			seen := make(map[string]bool)
			var transactions []model.Transaction

			for _, path := range files {
				f, err := os.Open(path) // #nosec G304
				if err != nil {
					slog.Error("failed to open file", "file", path, "error", err)
					continue
				}

				parsed, err := parser.ParseFile(ctx, f, wallet.ID)
				_ = f.Close()
				if err != nil {
					slog.Error("failed to parse OFX file", "file", path, "error", err)
					continue
				}

				added := 0
				for _, txn := range parsed {
					if seen[txn.Hash] {
						continue
					}
					seen[txn.Hash] = true
					transactions = append(transactions, txn)
					added++
				}

				slog.Info("processed file",
					"file", filepath.Base(path),
					"found", len(parsed),
					"added", added)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.FormatWarning("No transactions found in any file"))
				return nil
			}

			bar := progressbar.NewOptions(len(transactions),
				progressbar.OptionSetDescription("Categorizing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			categorized := 0
			for i := range transactions {
				txn := &transactions[i]
				suggestion := classifier.Classify(txn.Description, inputs.categories, inputs.rules, inputs.history)
				if !suggestion.IsFallback && suggestion.Type == txn.Type {
					txn.CategoryName = suggestion.Category
					for _, cat := range inputs.categories {
						if cat.Type == suggestion.Type && cat.Name == suggestion.Category {
							txn.CategoryID = cat.ID
							break
						}
					}
					categorized++
				}
				_ = bar.Add(1)
			}

			if dryRun {
				fmt.Println(cli.FormatInfo(fmt.Sprintf(
					"Dry run: %d transactions parsed, %d auto-categorized, nothing saved",
					len(transactions), categorized)))
				return nil
			}

			saved, err := store.SaveTransactions(ctx, transactions)
			if err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d transactions into %s (%d duplicates skipped, %d auto-categorized)",
				saved, wallet.Name, len(transactions)-saved, categorized)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "parse and categorize without saving")

	return cmd
}
