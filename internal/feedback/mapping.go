package feedback

import (
	"net/url"

	"github.com/kudoslabs/kudos/pkg/query"
	"github.com/kudoslabs/kudos/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "submissions", "s").
	Project("id", "ID").
	Project("category", "Category").
	Project("rating", "Rating").
	Project("original_text", "OriginalText").
	Project("enhanced_text", "EnhancedText").
	Project("final_text", "FinalText").
	Project("use_enhancement", "UseEnhancement").
	Project("is_accurate", "IsAccurate").
	Project("submitter_email", "SubmitterEmail").
	Project("submitter_name", "SubmitterName").
	Project("created_at", "CreatedAt")

// Listing order is creation time, newest first.
var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for submission queries.
// Nil fields are ignored. Owner scopes results to one submitter email;
// Category matches exactly.
type Filters struct {
	Owner    *string   `json:"owner,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SubmitterEmail", f.Owner).
		WhereEquals("Category", f.Category)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}

	if c := values.Get("category"); c != "" {
		if parsed, err := ParseCategory(c); err == nil {
			f.Category = &parsed
		}
	}

	return f
}

func scanSubmission(s repository.Scanner) (Submission, error) {
	var sub Submission
	err := s.Scan(
		&sub.ID,
		&sub.Category,
		&sub.Rating,
		&sub.OriginalText,
		&sub.EnhancedText,
		&sub.FinalText,
		&sub.UseEnhancement,
		&sub.IsAccurate,
		&sub.SubmitterEmail,
		&sub.SubmitterName,
		&sub.CreatedAt,
	)
	return sub, err
}
