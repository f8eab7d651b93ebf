package tones

import (
	"context"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/pkg/pagination"
)

// System defines tone override operations. Instructions never fails:
// when storage is unconfigured, unreachable, or holds no active
// override for the tone, the hardcoded default instructions come back.
type System interface {
	Handler() *Handler
	Instructions(ctx context.Context, tone Tone) string
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Override], error)
	Find(ctx context.Context, id uuid.UUID) (*Override, error)
	Create(ctx context.Context, cmd CreateCommand) (*Override, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Override, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Override, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Override, error)
}
