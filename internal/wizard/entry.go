package wizard

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// EntryNode returns a state node for the free-text screen. Input shorter
// than MinFeedbackLength trimmed characters re-prompts with a warning;
// exactly the minimum advances. Positive categories are then offered
// the enhancement step. FinalText starts as the original text so the
// record is submittable even when the review screen is skipped.
func EntryNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rec, err := extractRecord(s)
		if err != nil {
			return s, fmt.Errorf("entry: %w", err)
		}

		text, err := collectFeedback(ctx, rt)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrEntryFailed, err)
		}

		rec.OriginalText = text
		rec.FinalText = text

		if rec.Category.Positive() {
			opted, err := rt.Interactor.OfferEnhancement(ctx)
			if err != nil {
				return s, fmt.Errorf("%w: %w", ErrEntryFailed, err)
			}
			rec.UseEnhancement = opted
		}

		rt.Logger.InfoContext(ctx, "feedback entered",
			"length", utf8.RuneCountInString(text),
			"use_enhancement", rec.UseEnhancement,
		)

		s = s.Set(KeyRecord, *rec)
		return s, nil
	})
}

func collectFeedback(ctx context.Context, rt *Runtime) (string, error) {
	for {
		input, err := rt.Interactor.EnterFeedback(ctx)
		if err != nil {
			return "", err
		}

		trimmed := strings.TrimSpace(input)
		if utf8.RuneCountInString(trimmed) >= MinFeedbackLength {
			return trimmed, nil
		}

		rt.Interactor.Notify(fmt.Sprintf(
			"Please enter at least %d characters of feedback.",
			MinFeedbackLength,
		))
	}
}
