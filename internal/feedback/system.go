package feedback

import (
	"context"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/pagination"
)

// System defines the public contract for feedback domain operations.
type System interface {
	Handler(identity identity.System) *Handler

	Submit(ctx context.Context, cmd SubmitCommand) (*Submission, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Submission], error)

	Find(ctx context.Context, id uuid.UUID) (*Submission, error)
}
