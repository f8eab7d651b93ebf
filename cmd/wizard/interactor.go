package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/wizard"
)

// TerminalInteractor collects wizard input from a terminal session.
type TerminalInteractor struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalInteractor creates a TerminalInteractor over the given
// streams.
func NewTerminalInteractor(in io.Reader, out io.Writer) *TerminalInteractor {
	return &TerminalInteractor{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (t *TerminalInteractor) SelectCategory(ctx context.Context) (feedback.Category, error) {
	categories := feedback.Categories()

	fmt.Fprintln(t.out, "How was your experience?")
	for i, c := range categories {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, c)
	}

	for {
		input, err := t.readLine(ctx, "Select 1-4: ")
		if err != nil {
			return "", err
		}

		if parsed, err := feedback.ParseCategory(strings.ToLower(input)); err == nil {
			return parsed, nil
		}

		var choice int
		if _, err := fmt.Sscanf(input, "%d", &choice); err == nil {
			if choice >= 1 && choice <= len(categories) {
				return categories[choice-1], nil
			}
		}

		fmt.Fprintln(t.out, "Please pick one of the listed options.")
	}
}

func (t *TerminalInteractor) EnterFeedback(ctx context.Context) (string, error) {
	return t.readLine(ctx, "Tell us about it: ")
}

func (t *TerminalInteractor) OfferEnhancement(ctx context.Context) (bool, error) {
	return t.readYesNo(ctx, "Want help polishing your review? [y/N]: ", false)
}

func (t *TerminalInteractor) ReviewEnhancement(ctx context.Context, original, enhanced string) (string, error) {
	fmt.Fprintln(t.out, "\nYour review:")
	fmt.Fprintln(t.out, "  "+original)
	fmt.Fprintln(t.out, "\nPolished version:")
	fmt.Fprintln(t.out, "  "+enhanced)

	input, err := t.readLine(ctx, "\nPress enter to use the polished version, or type your own: ")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) == "" {
		return enhanced, nil
	}
	return input, nil
}

func (t *TerminalInteractor) ConfirmAccuracy(ctx context.Context, record wizard.Record) (*bool, error) {
	fmt.Fprintln(t.out, "\nSubmitting:")
	fmt.Fprintf(t.out, "  category: %s\n", record.Category)
	fmt.Fprintln(t.out, "  "+record.FinalText)

	input, err := t.readLine(ctx, "Does this look accurate? [y/n/skip]: ")
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		accurate := true
		return &accurate, nil
	case "n", "no":
		accurate := false
		return &accurate, nil
	default:
		return nil, nil
	}
}

func (t *TerminalInteractor) Notify(message string) {
	fmt.Fprintln(t.out, message)
}

func (t *TerminalInteractor) readYesNo(ctx context.Context, prompt string, fallback bool) (bool, error) {
	input, err := t.readLine(ctx, prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return fallback, nil
	}
}

// readLine blocks on terminal input; a cancelled context aborts the
// wizard between keystroke deliveries.
func (t *TerminalInteractor) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
