package wizard

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// CategoryNode returns a state node for the first screen: the user picks
// one of the four sentiment categories. The category is immutable from
// here on.
func CategoryNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		rec, err := extractRecord(s)
		if err != nil {
			return s, fmt.Errorf("category: %w", err)
		}

		category, err := rt.Interactor.SelectCategory(ctx)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrCategoryFailed, err)
		}

		rec.Category = category

		rt.Logger.InfoContext(ctx, "category selected", "category", category)

		s = s.Set(KeyRecord, *rec)
		return s, nil
	})
}
