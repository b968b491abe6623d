package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dverduzco/monedero/internal/model"
)

// Choice is the outcome of reviewing one suggestion.
type Choice struct {
	Category string
	Type     model.TransactionType
	Skipped  bool
}

// Prompter drives the interactive review of category suggestions.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter bound to the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ConfirmSuggestion shows a suggestion for a transaction description and lets
// the user accept it, pick a different category, or skip.
func (p *Prompter) ConfirmSuggestion(ctx context.Context, description string, suggestion model.Suggestion, categories []model.Category) (Choice, error) {
	select {
	case <-ctx.Done():
		return Choice{}, ctx.Err()
	default:
	}

	content := fmt.Sprintf("%s\n%s %s",
		BoldStyle.Render(description),
		SubtleStyle.Render("Suggested:"),
		p.renderSuggestion(suggestion),
	)
	if _, err := fmt.Fprintln(p.writer, RenderBox("Categorize", content)); err != nil {
		return Choice{}, fmt.Errorf("failed to write suggestion box: %w", err)
	}

	if suggestion.IsFallback {
		fmt.Fprintln(p.writer, "  [A] Leave as "+suggestion.Category)
	} else {
		fmt.Fprintln(p.writer, "  [A] Accept suggestion: "+SuccessStyle.Render(suggestion.Category))
	}
	fmt.Fprintln(p.writer, "  [C] Choose a different category")
	fmt.Fprintln(p.writer, "  [S] Skip")
	fmt.Fprintln(p.writer)

	choice, err := p.promptChoice(ctx, "Choice", []string{"a", "c", "s"})
	if err != nil {
		return Choice{}, err
	}

	switch choice {
	case "a":
		return Choice{Category: suggestion.Category, Type: suggestion.Type}, nil
	case "c":
		return p.pickCategory(ctx, categories)
	default:
		return Choice{Skipped: true}, nil
	}
}

// ConfirmTeachRule asks whether to save a rule derived from the user's
// correction, so future transactions like this one classify automatically.
func (p *Prompter) ConfirmTeachRule(ctx context.Context, rule *model.Rule) (bool, error) {
	if rule == nil {
		return false, nil
	}

	fmt.Fprintf(p.writer, "\n%s Always classify %s as %s?\n",
		TagIcon,
		BoldStyle.Render(fmt.Sprintf("%q", rule.Keywords[0])),
		SuccessStyle.Render(rule.Category),
	)

	choice, err := p.promptChoice(ctx, "Save rule [y/n]", []string{"y", "n"})
	if err != nil {
		return false, err
	}
	return choice == "y", nil
}

// pickCategory shows a numbered list of the wallet's categories and reads a
// selection, or a new category name typed directly.
func (p *Prompter) pickCategory(ctx context.Context, categories []model.Category) (Choice, error) {
	for i, cat := range categories {
		label := cat.Name
		if cat.Icon != "" {
			label = cat.Icon + " " + label
		}
		fmt.Fprintf(p.writer, "  [%d] %s %s\n", i+1, label, SubtleStyle.Render(string(cat.Type)))
	}
	fmt.Fprintln(p.writer, SubtleStyle.Render("  or type a new category name"))

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Category")); err != nil {
			return Choice{}, fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			return Choice{}, err
		}
		if input == "" {
			continue
		}

		if n, err := strconv.Atoi(input); err == nil {
			if n < 1 || n > len(categories) {
				fmt.Fprintln(p.writer, FormatWarning("No such category"))
				continue
			}
			cat := categories[n-1]
			return Choice{Category: cat.Name, Type: cat.Type}, nil
		}

		// Typed names resolve against existing categories first, so a new
		// category is only implied when nothing matches.
		for _, cat := range categories {
			if strings.EqualFold(cat.Name, input) {
				return Choice{Category: cat.Name, Type: cat.Type}, nil
			}
		}
		return Choice{Category: input, Type: model.TypeExpense}, nil
	}
}

// promptChoice reads input until it matches one of the valid choices.
func (p *Prompter) promptChoice(ctx context.Context, prompt string, valid []string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		input = strings.ToLower(input)
		for _, v := range valid {
			if input == v {
				return input, nil
			}
		}

		fmt.Fprintln(p.writer, FormatWarning("Please choose one of: "+strings.Join(valid, ", ")))
	}
}

func (p *Prompter) renderSuggestion(suggestion model.Suggestion) string {
	label := suggestion.Category
	if suggestion.Type == model.TypeIncome {
		return IncomeStyle.Render(label + " (income)")
	}
	if suggestion.IsFallback {
		return WarningStyle.Render(label)
	}
	return SuccessStyle.Render(label)
}
