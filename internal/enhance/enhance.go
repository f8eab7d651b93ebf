// Package enhance implements the text enhancement gateway. It wraps
// user-written feedback in a tone-specific instruction, sends it to the
// configured language model, and returns the polished text. Every
// failure along that path resolves to the original text: the caller
// always gets something usable back.
package enhance

import (
	"context"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Completer performs a single text completion. The production
// implementation talks to the configured model endpoint; tests supply
// their own.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// agentCompleter creates a fresh agent per call so completions never
// share connection state across concurrent requests.
type agentCompleter struct {
	cfg gaconfig.AgentConfig
}

// NewCompleter creates a Completer backed by the configured agent.
func NewCompleter(cfg gaconfig.AgentConfig) Completer {
	return &agentCompleter{cfg: cfg}
}

func (c *agentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", err
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", err
	}

	return resp.Content(), nil
}

// Result carries an enhancement outcome. Enhanced reports whether the
// text came from the model; when false, Text is the original input.
type Result struct {
	Text     string
	Enhanced bool
}

// composePrompt wraps the user's text in the tone instructions,
// quoted the way the model templates expect.
func composePrompt(instructions, text string) string {
	return instructions + "\n\n\"" + text + "\""
}

// cleanResponse strips whitespace and any quote pair the model echoed
// back from the prompt framing.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
