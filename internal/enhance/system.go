package enhance

import (
	"context"
	"log/slog"

	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/tones"
)

// System defines the enhancement gateway operation.
type System interface {
	Handler() *Handler
	Enhance(ctx context.Context, text string, category feedback.Category) Result
}

type gateway struct {
	completer Completer
	tones     tones.System
	logger    *slog.Logger
}

// New creates an enhancement gateway backed by the given completer and
// tone system.
func New(completer Completer, t tones.System, logger *slog.Logger) System {
	return &gateway{
		completer: completer,
		tones:     t,
		logger:    logger.With("system", "enhance"),
	}
}

func (g *gateway) Handler() *Handler {
	return NewHandler(g, g.logger)
}

// Enhance sends the text through the model with the tone instructions
// for its category. Any failure, including an empty or whitespace-only
// completion, falls back to the original text unchanged. Enhancement is
// strictly best effort and never blocks the flow that requested it.
func (g *gateway) Enhance(ctx context.Context, text string, category feedback.Category) Result {
	tone := tones.ToneFor(category)
	prompt := composePrompt(g.tones.Instructions(ctx, tone), text)

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("enhancement failed, returning original text",
			"category", category,
			"tone", tone,
			"error", err,
		)
		return Result{Text: text}
	}

	cleaned := cleanResponse(raw)
	if cleaned == "" {
		g.logger.Warn("enhancement returned empty text, returning original",
			"category", category,
			"tone", tone,
		)
		return Result{Text: text}
	}

	g.logger.Info("text enhanced",
		"category", category,
		"tone", tone,
		"original_length", len(text),
		"enhanced_length", len(cleaned),
	)
	return Result{Text: cleaned, Enhanced: true}
}
