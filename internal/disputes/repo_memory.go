package disputes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores disputes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Dispute
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Dispute)}
}

// Create stores the dispute.
func (r *MemoryRepo) Create(ctx context.Context, d Dispute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[d.ID] = d
	return nil
}

// GetByID returns a dispute by its ID, scoped to the owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, disputeID string) (Dispute, error) {
	if err := ctx.Err(); err != nil {
		return Dispute{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[disputeID]
	if !ok || d.UserID != userID {
		return Dispute{}, ErrNotFound
	}
	return d, nil
}

// GetByItem returns the dispute saved for a specific report item.
func (r *MemoryRepo) GetByItem(ctx context.Context, userID, reportID, itemID string) (Dispute, error) {
	if err := ctx.Err(); err != nil {
		return Dispute{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.byID {
		if d.UserID == userID && d.ReportID == reportID && d.ItemID == itemID {
			return d, nil
		}
	}
	return Dispute{}, ErrNotFound
}

// ListByUser returns the user's disputes ordered newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Dispute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Dispute
	for _, d := range r.byID {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Dispute{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Update replaces an existing dispute.
func (r *MemoryRepo) Update(ctx context.Context, d Dispute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[d.ID]
	if !ok || existing.UserID != d.UserID {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

// Delete removes a dispute.
func (r *MemoryRepo) Delete(ctx context.Context, userID, disputeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[disputeID]
	if !ok || d.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, disputeID)
	return nil
}

// MemoryTemplatesRepo stores user templates in memory.
type MemoryTemplatesRepo struct {
	mu   sync.RWMutex
	byID map[string]Template
}

// NewMemoryTemplatesRepo constructs a MemoryTemplatesRepo.
func NewMemoryTemplatesRepo() *MemoryTemplatesRepo {
	return &MemoryTemplatesRepo{byID: make(map[string]Template)}
}

// Create stores the template.
func (r *MemoryTemplatesRepo) Create(ctx context.Context, t Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[t.ID] = t
	return nil
}

// ListByUser returns the user's templates ordered oldest-first.
func (r *MemoryTemplatesRepo) ListByUser(ctx context.Context, userID string) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Template
	for _, t := range r.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a template.
func (r *MemoryTemplatesRepo) Delete(ctx context.Context, userID, templateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[templateID]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, templateID)
	return nil
}

// ClaimGuest reassigns every dispute owned by the guest identity to the
// authenticated user and reports how many rows moved.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for id, d := range r.byID {
		if d.UserID == guestUserID {
			d.UserID = authedUserID
			r.byID[id] = d
			moved++
		}
	}
	return moved, nil
}
