package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and teach classification rules",
		Long: `Rules map description keywords to categories. They are consulted in the
order they were taught: the oldest matching rule wins.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(teachRuleCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all taught rules in precedence order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.GetRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to get rules: %w", err)
			}

			if len(rules) == 0 {
				fmt.Println(cli.FormatInfo("No rules yet. Correct a suggestion or use 'monedero rules teach'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("#"),
				cli.TableHeaderStyle.Render("Keywords"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Type"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 3), strings.Repeat("-", 24), strings.Repeat("-", 16), strings.Repeat("-", 8))

			for _, rule := range rules {
				category := rule.Category
				if category == "" {
					category = cli.SubtleStyle.Render("(type only)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					rule.Position, strings.Join(rule.Keywords, ", "), category, rule.Type)
			}

			return nil
		},
	}
}

func teachRuleCmd() *cobra.Command {
	var (
		categoryFlag string
		typeFlag     string
	)

	cmd := &cobra.Command{
		Use:   "teach <keyword...>",
		Short: "Teach a rule manually",
		Long: `Append a rule mapping one or more keywords to a category. A transaction
matches when any keyword appears in its description.

Examples:
  monedero rules teach oxxo --category Antojos
  monedero rules teach gasolina pemex --category Transporte
  monedero rules teach nomina --type income`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if categoryFlag == "" && typeFlag == "" {
				return fmt.Errorf("a rule needs --category or --type")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			keywords := make([]string, 0, len(args))
			for _, kw := range args {
				keywords = append(keywords, strings.ToLower(strings.TrimSpace(kw)))
			}

			rule := &model.Rule{
				Keywords: keywords,
				Category: categoryFlag,
				Type:     model.TransactionType(typeFlag),
			}

			if err := store.AppendRule(ctx, rule); err != nil {
				return fmt.Errorf("failed to save rule: %w", err)
			}

			target := rule.Category
			if target == "" {
				target = string(rule.Type)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rule saved: %s → %s", strings.Join(keywords, ", "), target)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "target category name")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "transaction type (income, expense)")

	return cmd
}
