package reports

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Repo defines persistence operations for report snapshots.
type Repo interface {
	Create(ctx context.Context, r Report) error
	GetByID(ctx context.Context, userID, reportID string) (Report, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error)
	Delete(ctx context.Context, userID, reportID string) error
}
