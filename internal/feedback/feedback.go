// Package feedback implements the feedback submission domain for Kudos.
// It provides the normalized submission record, validation, data access,
// and HTTP handlers for collecting and listing customer feedback.
package feedback

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is a stored feedback record. Category carries the explicit
// four-value sentiment; Rating is its fixed numeric projection for
// reporting. Both are persisted so neither historical schema variant is
// lost.
type Submission struct {
	ID             uuid.UUID `json:"id"`
	Category       Category  `json:"category"`
	Rating         int       `json:"rating"`
	OriginalText   string    `json:"originalText"`
	EnhancedText   *string   `json:"enhancedText"`
	FinalText      string    `json:"finalText"`
	UseEnhancement bool      `json:"useEnhancement"`
	IsAccurate     *bool     `json:"isAccurate"`
	SubmitterEmail *string   `json:"submitterEmail"`
	SubmitterName  *string   `json:"submitterName"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubmitCommand carries the data needed to persist a feedback submission.
// EnhancedText is only ever populated from the enhancement gateway's
// return value.
type SubmitCommand struct {
	Category       Category `json:"category"`
	OriginalText   string   `json:"originalText"`
	EnhancedText   *string  `json:"enhancedText"`
	FinalText      string   `json:"finalText"`
	UseEnhancement bool     `json:"useEnhancement"`
	IsAccurate     *bool    `json:"isAccurate"`
	SubmitterEmail *string  `json:"submitterEmail"`
	SubmitterName  *string  `json:"submitterName"`
}

// Validate checks required fields before any I/O occurs. Category,
// original text, and final text must all be present.
func (c *SubmitCommand) Validate() error {
	if _, err := ParseCategory(string(c.Category)); err != nil {
		return ErrMissingFields
	}
	if strings.TrimSpace(c.OriginalText) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(c.FinalText) == "" {
		return ErrMissingFields
	}
	return nil
}
