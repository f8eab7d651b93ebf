package tones

import (
	"net/url"

	"github.com/kudoslabs/kudos/pkg/query"
	"github.com/kudoslabs/kudos/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tone_overrides", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("tone", "Tone").
	Project("instructions", "Instructions").
	Project("description", "Description").
	Project("active", "Active")

var defaultSort = query.SortField{Field: "Name"}

// Filters contains optional filtering criteria for override queries.
type Filters struct {
	Tone   *Tone `json:"tone,omitempty"`
	Active *bool `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Tone", f.Tone).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("tone"); t != "" {
		if parsed, err := ParseTone(t); err == nil {
			f.Tone = &parsed
		}
	}

	switch values.Get("active") {
	case "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}

	return f
}

func scanOverride(s repository.Scanner) (Override, error) {
	var o Override
	err := s.Scan(
		&o.ID,
		&o.Name,
		&o.Tone,
		&o.Instructions,
		&o.Description,
		&o.Active,
	)
	return o, err
}
