package wizard

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kudoslabs/kudos/internal/feedback"
)

// ConfirmNode returns a state node for the terminal screen. It collects
// the optional accuracy assertion and triggers exactly one best-effort
// submit. A storage failure is logged, not retried, and never blocks
// the user from finishing.
func ConfirmNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rec, err := extractRecord(s)
		if err != nil {
			return s, fmt.Errorf("confirm: %w", err)
		}

		accurate, err := rt.Interactor.ConfirmAccuracy(ctx, *rec)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrConfirmFailed, err)
		}
		rec.IsAccurate = accurate

		cmd := feedback.SubmitCommand{
			Category:       rec.Category,
			OriginalText:   rec.OriginalText,
			EnhancedText:   rec.EnhancedText,
			FinalText:      rec.FinalText,
			UseEnhancement: rec.UseEnhancement,
			IsAccurate:     rec.IsAccurate,
		}

		if sub, err := rt.Submitter.Submit(ctx, cmd); err != nil {
			rt.Logger.ErrorContext(ctx, "feedback submission failed", "error", err)
		} else {
			rec.Submitted = true
			rt.Logger.InfoContext(ctx, "feedback submission stored", "id", sub.ID)
		}

		rt.Interactor.Notify("Thank you for your feedback!")

		s = s.Set(KeyRecord, *rec)
		return s, nil
	})
}
