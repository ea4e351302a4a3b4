package disputes

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a dispute or template does not exist.
var ErrNotFound = errors.New("dispute not found")

// Repo defines persistence operations for dispute drafts.
type Repo interface {
	Create(ctx context.Context, d Dispute) error
	GetByID(ctx context.Context, userID, disputeID string) (Dispute, error)
	GetByItem(ctx context.Context, userID, reportID, itemID string) (Dispute, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Dispute, error)
	Update(ctx context.Context, d Dispute) error
	Delete(ctx context.Context, userID, disputeID string) error
}

// TemplatesRepo defines persistence operations for user-authored templates.
// Built-in templates live in code, not in the repo.
type TemplatesRepo interface {
	Create(ctx context.Context, t Template) error
	ListByUser(ctx context.Context, userID string) ([]Template, error)
	Delete(ctx context.Context, userID, templateID string) error
}
