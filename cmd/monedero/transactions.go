package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
	"github.com/dverduzco/monedero/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Browse recorded transactions",
	}

	cmd.AddCommand(listTransactionsCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		typeFlag  string
		search    string
		fromFlag  string
		untilFlag string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wallet, err := resolveWallet(ctx, store)
			if err != nil {
				return err
			}

			filter := service.TransactionFilter{
				WalletID: wallet.ID,
				Type:     model.TransactionType(typeFlag),
				Search:   search,
				Limit:    limit,
			}
			if fromFlag != "" {
				from, err := time.ParseInLocation("2006-01-02", fromFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --from date %q", fromFlag)
				}
				filter.StartDate = &from
			}
			if untilFlag != "" {
				until, err := time.ParseInLocation("2006-01-02", untilFlag, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --until date %q", untilFlag)
				}
				filter.EndDate = &until
			}

			transactions, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.FormatInfo("No transactions match."))
				return nil
			}

			fmt.Println(cli.FormatTitle(wallet.Name))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 30), strings.Repeat("-", 16), strings.Repeat("-", 10))

			for _, txn := range transactions {
				category := txn.CategoryName
				if category == "" {
					category = cli.WarningStyle.Render(model.FallbackCategory)
				}
				amount := cli.ExpenseStyle.Render(fmt.Sprintf("-$%.2f", txn.Amount))
				if txn.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render(fmt.Sprintf("+$%.2f", txn.Amount))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					txn.Date.Format("2006-01-02"), txn.Description, category, amount)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "filter by type (income, expense)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by description substring")
	cmd.Flags().StringVar(&fromFlag, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "end date (YYYY-MM-DD, exclusive)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows to show")

	return cmd
}
