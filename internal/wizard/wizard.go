// Package wizard implements the four-screen feedback flow as an explicit
// state machine: category select, text entry, enhancement review, and
// confirmation. Transitions are forward-only and the record only
// accumulates fields; the enhancement review screen is entered only when
// the category is positive and the user opted in. Submission on the
// final screen is best effort: a storage failure is logged and the user
// still reaches the terminal screen.
package wizard

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/kudoslabs/kudos/internal/feedback"
)

// MinFeedbackLength is the minimum number of characters, after trimming
// surrounding whitespace, required to advance past text entry.
const MinFeedbackLength = 30

// KeyRecord is the state bag key holding the accumulating Record.
const KeyRecord = "record"

// Record is the wizard's in-memory feedback record. Each screen adds
// fields; nothing already captured is discarded.
type Record struct {
	Category       feedback.Category
	OriginalText   string
	EnhancedText   *string
	FinalText      string
	UseEnhancement bool
	IsAccurate     *bool
	Submitted      bool
}

// Run executes the wizard flow to completion and returns the final
// record. The record comes back even when submission failed; Submitted
// reports whether the durable write went through.
func Run(ctx context.Context, rt *Runtime) (*Record, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyRecord, Record{})

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractRecord(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("kudos-wizard")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("category", CategoryNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("entry", EntryNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("review", ReviewNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("confirm", ConfirmNode(rt)); err != nil {
		return nil, err
	}

	// category → entry (unconditional)
	if err := graph.AddEdge("category", "entry", nil); err != nil {
		return nil, err
	}

	// entry → review (positive category, enhancement requested)
	if err := graph.AddEdge("entry", "review", wantsReview); err != nil {
		return nil, err
	}

	// entry → confirm (everyone else)
	if err := graph.AddEdge("entry", "confirm", state.Not(wantsReview)); err != nil {
		return nil, err
	}

	// review → confirm (unconditional)
	if err := graph.AddEdge("review", "confirm", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("category"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("confirm"); err != nil {
		return nil, err
	}

	return graph, nil
}

func wantsReview(s state.State) bool {
	rec, err := extractRecord(s)
	if err != nil {
		return false
	}
	return rec.Category.Positive() && rec.UseEnhancement
}

func extractRecord(s state.State) (*Record, error) {
	val, ok := s.Get(KeyRecord)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyRecord)
	}

	rec, ok := val.(Record)
	if !ok {
		return nil, fmt.Errorf("%s is not Record", KeyRecord)
	}

	return &rec, nil
}
