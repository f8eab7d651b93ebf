// Package tones implements the prompt-tone domain for Kudos. The
// enhancement gateway wraps user text in a tone-specific instruction:
// positive categories get the review-polish template, constructive
// categories get the actionable-feedback template. Defaults are
// hardcoded; named overrides can be stored per tone with exactly one
// active override at a time.
package tones

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/internal/feedback"
)

// Tone selects which instruction template wraps the user's text.
type Tone string

// Valid prompt tones.
const (
	TonePositive     Tone = "positive"
	ToneConstructive Tone = "constructive"
)

var tones = []Tone{TonePositive, ToneConstructive}

// Tones returns the list of valid prompt tones.
func Tones() []Tone {
	return tones
}

// ToneFor maps a feedback category onto its prompt tone.
func ToneFor(category feedback.Category) Tone {
	if category.Positive() {
		return TonePositive
	}
	return ToneConstructive
}

// ParseTone validates a string as a known tone.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if !slices.Contains(tones, t) {
		return "", ErrInvalidTone
	}
	return t, nil
}

// UnmarshalJSON validates that the decoded string is a known tone.
func (t *Tone) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTone(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Override is a named instruction override for a prompt tone.
type Override struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Tone         Tone      `json:"tone"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// CreateCommand carries the data needed to create an override.
type CreateCommand struct {
	Name         string  `json:"name"`
	Tone         Tone    `json:"tone"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// UpdateCommand carries the data needed to update an override.
type UpdateCommand struct {
	Name         string  `json:"name"`
	Tone         Tone    `json:"tone"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}
