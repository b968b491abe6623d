package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
	"github.com/dverduzco/monedero/internal/suggest"
)

func addCmd() *cobra.Command {
	var (
		categoryFlag string
		typeFlag     string
		dateFlag     string
		notes        string
		teach        bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "add <amount> <description...>",
		Short: "Record a transaction",
		Long: `Record a transaction in the wallet. The description is classified by the
suggestion engine; correcting the suggestion can teach a new rule so the next
similar transaction classifies itself.

Examples:
  monedero add 85.50 oxxo polanco
  monedero add 3000 pago mural --type income
  monedero add 219 netflix --category Suscripciones --teach=false`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			description := strings.Join(args[1:], " ")

			date := time.Now()
			if dateFlag != "" {
				date, err = time.ParseInLocation("2006-01-02", dateFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateFlag)
				}
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
			suggestion := classifier.Classify(description, inputs.categories, inputs.rules, inputs.history)

			choice, err := chooseCategory(ctx, description, suggestion, inputs.categories, categoryFlag, typeFlag, yes)
			if err != nil {
				return err
			}
			if choice.Skipped {
				fmt.Println(cli.FormatInfo("Skipped, nothing recorded"))
				return nil
			}

			txn := model.Transaction{
				ID:          uuid.NewString(),
				WalletID:    wallet.ID,
				Type:        choice.Type,
				Amount:      amount,
				Description: description,
				Notes:       notes,
				Date:        date,
			}
			applyCategory(&txn, choice, inputs.categories)

			saved, err := store.SaveTransactions(ctx, []model.Transaction{txn})
			if err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			if saved == 0 {
				fmt.Println(cli.FormatWarning("Already recorded, skipping duplicate"))
				return nil
			}

			label := txn.CategoryName
			if label == "" {
				label = model.FallbackCategory
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded $%.2f %s → %s", amount, description, label)))

			if teach {
				if err := maybeTeachRule(ctx, store, classifier, description, choice, inputs); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "category to use, skipping the interactive prompt")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "freeform notes")
	cmd.Flags().BoolVar(&teach, "teach", true, "offer to save a rule when the suggestion was corrected")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the suggestion without prompting")

	return cmd
}

// chooseCategory resolves the final category: an explicit --category wins,
// --yes accepts the suggestion, anything else goes through the prompter.
func chooseCategory(ctx context.Context, description string, suggestion model.Suggestion, categories []model.Category, categoryFlag, typeFlag string, yes bool) (cli.Choice, error) {
	if categoryFlag != "" {
		choice := cli.Choice{Category: categoryFlag, Type: model.TypeExpense}
		for _, cat := range categories {
			if strings.EqualFold(cat.Name, categoryFlag) {
				choice.Category = cat.Name
				choice.Type = cat.Type
				break
			}
		}
		if typeFlag != "" {
			choice.Type = model.TransactionType(typeFlag)
		}
		return choice, nil
	}

	if yes {
		return applyTypeFlag(cli.Choice{Category: suggestion.Category, Type: suggestion.Type}, typeFlag), nil
	}

	if suggestion.IsFallback {
		fmt.Println(cli.FormatWarning("No rule matched, suggesting " + suggestion.Category))
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	choice, err := prompter.ConfirmSuggestion(ctx, description, suggestion, categories)
	if err != nil {
		return choice, err
	}
	return applyTypeFlag(choice, typeFlag), nil
}

// applyTypeFlag makes an explicit --type win over whatever type the
// suggestion or the picked category carried.
func applyTypeFlag(choice cli.Choice, typeFlag string) cli.Choice {
	if typeFlag != "" && !choice.Skipped {
		choice.Type = model.TransactionType(typeFlag)
	}
	return choice
}

// applyCategory fills in the transaction's category fields. Accepting the
// fallback stores the row uncategorized so it stays visible as pending work.
func applyCategory(txn *model.Transaction, choice cli.Choice, categories []model.Category) {
	if choice.Category == "" || choice.Category == model.FallbackCategory {
		return
	}

	txn.CategoryName = choice.Category
	for _, cat := range categories {
		if cat.Type == choice.Type && strings.EqualFold(cat.Name, choice.Category) {
			txn.CategoryID = cat.ID
			txn.CategoryName = cat.Name
			return
		}
	}
}

// maybeTeachRule runs the feedback loop: when the user's choice diverged from
// the prediction, propose a rule and append it on confirmation.
func maybeTeachRule(ctx context.Context, store service.Storage, classifier *suggest.Classifier, description string, choice cli.Choice, inputs *classifierInputs) error {
	if choice.Category == "" || choice.Category == model.FallbackCategory {
		return nil
	}

	rule := classifier.ProposeRule(description, choice.Category, choice.Type, inputs.categories, inputs.rules, inputs.history)
	if rule == nil {
		return nil
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	save, err := prompter.ConfirmTeachRule(ctx, rule)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	if err := store.AppendRule(ctx, rule); err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rule saved: %q → %s", rule.Keywords[0], rule.Category)))
	return nil
}
