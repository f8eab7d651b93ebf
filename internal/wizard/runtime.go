package wizard

import (
	"context"
	"log/slog"

	"github.com/kudoslabs/kudos/internal/enhance"
	"github.com/kudoslabs/kudos/internal/feedback"
)

// Interactor collects user input for each wizard screen. Implementations
// block until the user acts; cancellation arrives through the context.
type Interactor interface {
	// SelectCategory presents the four sentiment choices and returns the
	// user's pick.
	SelectCategory(ctx context.Context) (feedback.Category, error)

	// EnterFeedback collects one round of free-text input. The entry node
	// re-invokes it until the minimum length policy is satisfied.
	EnterFeedback(ctx context.Context) (string, error)

	// OfferEnhancement asks whether the user wants an AI-polished
	// rewrite. Only reached for positive categories.
	OfferEnhancement(ctx context.Context) (bool, error)

	// ReviewEnhancement shows the original next to the enhanced text and
	// returns the text the user wants to submit, possibly edited.
	ReviewEnhancement(ctx context.Context, original, enhanced string) (string, error)

	// ConfirmAccuracy asks the user to assert the summary is accurate.
	// A nil result means the user skipped the question.
	ConfirmAccuracy(ctx context.Context, record Record) (*bool, error)

	// Notify displays a transient message (warnings, the closing
	// thank-you) without affecting wizard state.
	Notify(message string)
}

// Enhancer is the gateway seam. Satisfied by enhance.System.
type Enhancer interface {
	Enhance(ctx context.Context, text string, category feedback.Category) enhance.Result
}

// Submitter is the store seam. Satisfied by feedback.System.
type Submitter interface {
	Submit(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error)
}

// Runtime bundles the collaborators that wizard nodes require. It is
// constructed by higher-level composition code from the domain systems.
type Runtime struct {
	Interactor Interactor
	Enhancer   Enhancer
	Submitter  Submitter
	Logger     *slog.Logger
}
