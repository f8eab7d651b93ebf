package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ReviewNode returns a state node for the enhancement screen. The
// gateway call never fails outward: when enhancement falls back, the
// user reviews their own text. EnhancedText is populated only from a
// genuine gateway rewrite, never synthesized here.
func ReviewNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rec, err := extractRecord(s)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		result := rt.Enhancer.Enhance(ctx, rec.OriginalText, rec.Category)
		if result.Enhanced {
			rec.EnhancedText = &result.Text
		}

		final, err := rt.Interactor.ReviewEnhancement(ctx, rec.OriginalText, result.Text)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrReviewFailed, err)
		}

		if strings.TrimSpace(final) == "" {
			final = rec.OriginalText
		}
		rec.FinalText = final

		rt.Logger.InfoContext(ctx, "enhancement reviewed",
			"enhanced", result.Enhanced,
			"edited", final != result.Text,
		)

		s = s.Set(KeyRecord, *rec)
		return s, nil
	})
}
