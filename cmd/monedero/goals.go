package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
	"github.com/dverduzco/monedero/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(addGoalCmd())
	cmd.AddCommand(saveGoalCmd())
	cmd.AddCommand(deleteGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the wallet's savings goals",
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

			goals, err := store.GetGoals(ctx, wallet.ID)
			if err != nil {
				return fmt.Errorf("failed to get goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No goals yet. Use 'monedero goals add' to create one."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(cli.GoalIcon + " " + wallet.Name))

			for _, goal := range goals {
				label := goal.Name
				if goal.Icon != "" {
					label = goal.Icon + " " + label
				}
				fmt.Printf("[%d] %s  %s  $%.2f / $%.2f%s\n",
					goal.ID,
					cli.BoldStyle.Render(label),
					renderProgressBar(goal.Progress()),
					goal.SavedAmount, goal.TargetAmount,
					renderDeadline(goal.Deadline))
			}

			return nil
		},
	}
}

func addGoalCmd() *cobra.Command {
	var (
		icon     string
		deadline string
	)

	cmd := &cobra.Command{
		Use:   "add <target-amount> <name...>",
		Short: "Create a savings goal",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil || target <= 0 {
				return fmt.Errorf("invalid target amount %q", args[0])
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

			goal := &model.Goal{
				WalletID:     wallet.ID,
				Name:         strings.Join(args[1:], " "),
				Icon:         icon,
				TargetAmount: target,
			}
			if deadline != "" {
				d, err := time.ParseInLocation("2006-01-02", deadline, time.Local)
				if err != nil {
					return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD", deadline)
				}
				goal.Deadline = &d
			}

			if err := store.CreateGoal(ctx, goal); err != nil {
				return fmt.Errorf("failed to create goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal %s ($%.2f)", goal.Name, goal.TargetAmount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "🎯", "goal icon")
	cmd.Flags().StringVar(&deadline, "deadline", "", "target date (YYYY-MM-DD)")

	return cmd
}

func saveGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id> <amount>",
		Short: "Add money to a goal (negative amounts withdraw)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid goal ID %q", args[0])
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goal, err := store.AddToGoal(ctx, id, amount)
			if err != nil {
				return fmt.Errorf("failed to update goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: $%.2f / $%.2f %s",
				goal.Name, goal.SavedAmount, goal.TargetAmount, renderProgressBar(goal.Progress()))))
			return nil
		},
	}
}

func deleteGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid goal ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteGoal(ctx, id); err != nil {
				return fmt.Errorf("failed to delete goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %d", id)))
			return nil
		},
	}
}

// renderProgressBar draws a ten-segment progress bar.
func renderProgressBar(progress float64) string {
	const segments = 10
	filled := int(progress * segments)
	if filled > segments {
		filled = segments
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", segments-filled)
	return cli.SuccessStyle.Render(bar) + fmt.Sprintf(" %3.0f%%", progress*100)
}

func renderDeadline(deadline *time.Time) string {
	if deadline == nil {
		return ""
	}
	return cli.SubtleStyle.Render("  by " + deadline.Format("2006-01-02"))
}
