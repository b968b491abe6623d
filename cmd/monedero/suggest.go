package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
)

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <description...>",
		Short: "Preview how a description would be categorized",
		Long: `Run the suggestion engine on a description without recording anything.
Useful to check what a rule or historical match would do.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description := strings.Join(args, " ")

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

			suggestion := newClassifier().Classify(description, inputs.categories, inputs.rules, inputs.history)

			category := suggestion.Category
			if category == "" {
				category = "(no category of type " + string(suggestion.Type) + " in wallet)"
			}

			switch {
			case suggestion.IsFallback:
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%q → %s (no match)", description, category)))
			case suggestion.Type == model.TypeIncome:
				fmt.Println(cli.IncomeStyle.Render(fmt.Sprintf("%s %q → %s (income)", cli.SuccessIcon, description, category)))
			default:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%q → %s", description, category)))
			}

			if suggestion.WalletID != "" && suggestion.WalletID != wallet.ID {
				fmt.Println(cli.SubtleStyle.Render("  (learned from another wallet)"))
			}

			return nil
		},
	}
}
