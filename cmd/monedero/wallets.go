package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
)

func walletsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Manage wallets",
		Long:  `List and create wallets. Each wallet holds its own categories, transactions and goals.`,
	}

	cmd.AddCommand(listWalletsCmd())
	cmd.AddCommand(addWalletCmd())

	return cmd
}

func listWalletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallets, err := store.GetWallets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			if len(wallets) == 0 {
				fmt.Println(cli.FormatInfo("No wallets yet. Use 'monedero wallets add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Wallet"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Monthly budget"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 20), strings.Repeat("-", 10), strings.Repeat("-", 14))

			for _, wallet := range wallets {
				budget := cli.SubtleStyle.Render("(none)")
				if wallet.MonthlyBudget > 0 {
					budget = fmt.Sprintf("$%.2f", wallet.MonthlyBudget)
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\n", wallet.Emoji, wallet.Name, wallet.Type, budget)
			}

			return nil
		},
	}
}

func addWalletCmd() *cobra.Command {
	var (
		walletType string
		emoji      string
		color      string
		budget     float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new wallet",
		Long: `Create a wallet. Personal wallets start with General/Ingreso categories,
business wallets with Ingresos/Gastos.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallet := &model.Wallet{
				ID:            uuid.NewString(),
				Name:          args[0],
				Emoji:         emoji,
				Color:         color,
				Type:          model.WalletType(walletType),
				MonthlyBudget: budget,
			}

			if err := store.CreateWallet(ctx, wallet); err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created wallet %s %s (%s)", wallet.Emoji, wallet.Name, wallet.Type)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&walletType, "type", "t", "personal", "wallet type (personal, business)")
	cmd.Flags().StringVar(&emoji, "emoji", "👛", "wallet emoji")
	cmd.Flags().StringVar(&color, "color", "", "wallet display color")
	cmd.Flags().Float64Var(&budget, "budget", 0, "monthly budget")

	return cmd
}
