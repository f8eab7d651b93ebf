package enhance_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kudoslabs/kudos/internal/enhance"
	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/tones"
	"github.com/kudoslabs/kudos/pkg/database"
	"github.com/kudoslabs/kudos/pkg/pagination"
)

type recordingCompleter struct {
	prompt   string
	response string
	err      error
}

func (c *recordingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTones builds a tone system over an unconfigured database so
// Instructions always resolves to the hardcoded defaults.
func testTones(t *testing.T) tones.System {
	t.Helper()
	db, err := database.New(&database.Config{}, testLogger())
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	return tones.New(db, testLogger(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestEnhancePromptSelection(t *testing.T) {
	tests := []struct {
		category feedback.Category
		tone     tones.Tone
	}{
		{feedback.CategoryLoved, tones.TonePositive},
		{feedback.CategoryLiked, tones.TonePositive},
		{feedback.CategoryBetter, tones.ToneConstructive},
		{feedback.CategoryPoor, tones.ToneConstructive},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			completer := &recordingCompleter{response: "polished"}
			sys := enhance.New(completer, testTones(t), testLogger())

			text := "The service was wonderful and the staff went out of their way"
			result := sys.Enhance(context.Background(), text, tt.category)

			if !result.Enhanced {
				t.Fatal("expected enhanced result")
			}

			instructions, err := tones.DefaultInstructions(tt.tone)
			if err != nil {
				t.Fatalf("default instructions: %v", err)
			}
			if !strings.HasPrefix(completer.prompt, instructions) {
				t.Errorf("prompt does not open with %s instructions:\n%s", tt.tone, completer.prompt)
			}
			if !strings.Contains(completer.prompt, `"`+text+`"`) {
				t.Errorf("prompt does not quote the original text:\n%s", completer.prompt)
			}
		})
	}
}

func TestEnhanceFallbackOnError(t *testing.T) {
	completer := &recordingCompleter{err: errors.New("connection timed out")}
	sys := enhance.New(completer, testTones(t), testLogger())

	text := "Too slow, the order took over forty minutes"
	result := sys.Enhance(context.Background(), text, feedback.CategoryPoor)

	if result.Enhanced {
		t.Error("enhanced: got true, want false")
	}
	if result.Text != text {
		t.Errorf("text: got %q, want original", result.Text)
	}
}

func TestEnhanceFallbackOnEmptyResponse(t *testing.T) {
	completer := &recordingCompleter{response: "   \n"}
	sys := enhance.New(completer, testTones(t), testLogger())

	text := "Everything was fine but nothing stood out to me today"
	result := sys.Enhance(context.Background(), text, feedback.CategoryBetter)

	if result.Enhanced {
		t.Error("enhanced: got true, want false")
	}
	if result.Text != text {
		t.Errorf("text: got %q, want original", result.Text)
	}
}

func TestEnhanceUnwrapsQuotedResponse(t *testing.T) {
	completer := &recordingCompleter{response: "\"The service was exceptional and highly recommended.\"\n"}
	sys := enhance.New(completer, testTones(t), testLogger())

	result := sys.Enhance(
		context.Background(),
		"service was great would recommend to everyone I know",
		feedback.CategoryLoved,
	)

	if !result.Enhanced {
		t.Fatal("expected enhanced result")
	}
	if result.Text != "The service was exceptional and highly recommended." {
		t.Errorf("text: got %q", result.Text)
	}
}
