package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
)

func budgetCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the wallet's monthly budget against actual spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			now := time.Now()
			year, month := now.Year(), now.Month()
			if monthFlag != "" {
				parsed, err := time.Parse("2006-01", monthFlag)
				if err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", monthFlag)
				}
				year, month = parsed.Year(), parsed.Month()
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

			summary, err := store.GetMonthSummary(ctx, wallet.ID, year, month)
			if err != nil {
				return fmt.Errorf("failed to get month summary: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %s — %d-%02d", cli.ChartIcon, wallet.Name, year, month)))
			fmt.Printf("  Income:   %s\n", cli.IncomeStyle.Render(fmt.Sprintf("$%.2f", summary.TotalIncome)))
			fmt.Printf("  Expenses: %s\n", cli.ExpenseStyle.Render(fmt.Sprintf("$%.2f", summary.TotalExpenses)))
			fmt.Printf("  Balance:  $%.2f\n", summary.TotalIncome-summary.TotalExpenses)

			if wallet.MonthlyBudget > 0 {
				remaining := wallet.MonthlyBudget - summary.TotalExpenses
				used := summary.TotalExpenses / wallet.MonthlyBudget
				line := fmt.Sprintf("  Budget:   $%.2f spent of $%.2f %s", summary.TotalExpenses, wallet.MonthlyBudget, renderProgressBar(used))
				fmt.Println(line)
				if remaining < 0 {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("Over budget by $%.2f", -remaining)))
				}
			}

			if len(summary.SpentByCategory) > 0 {
				fmt.Println()
				fmt.Println(cli.SubtitleStyle.Render("  Spent by category"))

				names := make([]string, 0, len(summary.SpentByCategory))
				for name := range summary.SpentByCategory {
					names = append(names, name)
				}
				sort.Slice(names, func(i, j int) bool {
					return summary.SpentByCategory[names[i]] > summary.SpentByCategory[names[j]]
				})
				for _, name := range names {
					fmt.Printf("  %-20s $%.2f\n", name, summary.SpentByCategory[name])
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "month to report (YYYY-MM, default current)")

	return cmd
}
