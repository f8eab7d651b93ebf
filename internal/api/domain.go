package api

import (
	"github.com/kudoslabs/kudos/internal/enhance"
	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/internal/tones"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Feedback feedback.System
	Tones    tones.System
	Enhance  enhance.System
	Identity identity.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	feedbackSystem := feedback.New(
		runtime.Database,
		runtime.Logger,
		runtime.Pagination,
	)

	tonesSystem := tones.New(
		runtime.Database,
		runtime.Logger,
		runtime.Pagination,
	)

	enhanceSystem := enhance.New(
		enhance.NewCompleter(runtime.Agent),
		tonesSystem,
		runtime.Logger,
	)

	return &Domain{
		Feedback: feedbackSystem,
		Tones:    tonesSystem,
		Enhance:  enhanceSystem,
		Identity: runtime.Identity,
	}
}
