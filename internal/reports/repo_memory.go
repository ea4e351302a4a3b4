package reports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores reports in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Report
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Report)}
}

// Create stores the report.
func (r *MemoryRepo) Create(ctx context.Context, rep Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rep.ID] = rep
	return nil
}

// GetByID returns a report by ID, scoped to the owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, reportID string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.byID[reportID]
	if !ok || rep.UserID != userID {
		return Report{}, ErrNotFound
	}
	return rep, nil
}

// ListByUser returns the user's reports ordered newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Report
	for _, rep := range r.byID {
		if rep.UserID == userID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Report{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a report.
func (r *MemoryRepo) Delete(ctx context.Context, userID, reportID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.byID[reportID]
	if !ok || rep.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, reportID)
	return nil
}

// ClaimGuest reassigns every report owned by the guest identity to the
// authenticated user and reports how many rows moved.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for id, rep := range r.byID {
		if rep.UserID == guestUserID {
			rep.UserID = authedUserID
			r.byID[id] = rep
			moved++
		}
	}
	return moved, nil
}
