package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage a wallet's categories",
		Long:  `List, add, and remove the categories transactions classify into.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the wallet's categories",
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

			categories, err := store.GetCategories(ctx, wallet.ID)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.FormatInfo("No categories. Use 'monedero categories add' to create one."))
				return nil
			}

			fmt.Println(cli.FormatTitle(wallet.Name))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Type"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 20), strings.Repeat("-", 8))

			for _, cat := range categories {
				label := cat.Name
				if cat.Icon != "" {
					label = cat.Icon + " " + label
				}
				typeLabel := string(cat.Type)
				if cat.Type == model.TypeIncome {
					typeLabel = cli.IncomeStyle.Render(typeLabel)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, label, typeLabel)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		categoryType string
		icon         string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			created, err := store.CreateCategory(ctx, &model.Category{
				WalletID: wallet.ID,
				Name:     args[0],
				Icon:     icon,
				Type:     model.TransactionType(categoryType),
			})
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s) to %s", created.Name, created.Type, wallet.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryType, "type", "t", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&icon, "icon", "", "category icon")

	return cmd
}

func removeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a category",
		Long: `Soft-delete a category by ID. Existing transactions keep their
denormalized category name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategory(ctx, id); err != nil {
				return fmt.Errorf("failed to remove category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed category %d", id)))
			return nil
		},
	}
}
