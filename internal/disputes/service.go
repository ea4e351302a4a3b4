package disputes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for dispute drafts and templates.
type Service struct {
	Repo      Repo
	Templates TemplatesRepo
}

// SaveInput captures the fields the presentation layer submits for an item.
type SaveInput struct {
	ReportID       string
	ItemID         string
	ItemKind       string
	Bureaus        []string
	Reason         string
	Instruction    string
	SelectedFields []string
}

// Save creates or updates the draft for a report item. Saving twice for the
// same item replaces the earlier draft rather than duplicating it.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Dispute, error) {
	if strings.TrimSpace(userID) == "" {
		return Dispute{}, errors.New("userID is required")
	}
	if strings.TrimSpace(in.ItemID) == "" {
		return Dispute{}, errors.New("itemId is required")
	}
	if strings.TrimSpace(in.Reason) == "" || strings.TrimSpace(in.Instruction) == "" {
		return Dispute{}, errors.New("reason and instruction are required")
	}

	now := time.Now().UTC()

	existing, err := s.Repo.GetByItem(ctx, userID, in.ReportID, in.ItemID)
	if err == nil {
		existing.Bureaus = in.Bureaus
		existing.Reason = in.Reason
		existing.Instruction = in.Instruction
		existing.SelectedFields = in.SelectedFields
		existing.UpdatedAt = now
		if err := s.Repo.Update(ctx, existing); err != nil {
			return Dispute{}, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Dispute{}, err
	}

	d := Dispute{
		ID:             uuid.NewString(),
		UserID:         userID,
		ReportID:       in.ReportID,
		ItemID:         in.ItemID,
		ItemKind:       in.ItemKind,
		Bureaus:        in.Bureaus,
		Reason:         in.Reason,
		Instruction:    in.Instruction,
		SelectedFields: in.SelectedFields,
		Status:         StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return Dispute{}, err
	}
	return d, nil
}

// Get returns a dispute by ID.
func (s *Service) Get(ctx context.Context, userID, disputeID string) (Dispute, error) {
	if disputeID == "" {
		return Dispute{}, errors.New("disputeID is required")
	}
	return s.Repo.GetByID(ctx, userID, disputeID)
}

// List returns the user's disputes ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Dispute, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Update edits the wording and scope of an existing draft. Identity fields
// (report, item) stay fixed; use Save to target a different item.
func (s *Service) Update(ctx context.Context, userID, disputeID string, in SaveInput) (Dispute, error) {
	if strings.TrimSpace(in.Reason) == "" || strings.TrimSpace(in.Instruction) == "" {
		return Dispute{}, errors.New("reason and instruction are required")
	}
	d, err := s.Repo.GetByID(ctx, userID, disputeID)
	if err != nil {
		return Dispute{}, err
	}
	d.Bureaus = in.Bureaus
	d.Reason = in.Reason
	d.Instruction = in.Instruction
	d.SelectedFields = in.SelectedFields
	d.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, d); err != nil {
		return Dispute{}, err
	}
	return d, nil
}

// UpdateStatus moves a dispute through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, userID, disputeID, status string) (Dispute, error) {
	switch status {
	case StatusDraft, StatusSubmitted, StatusResolved:
	default:
		return Dispute{}, errors.New("invalid status")
	}
	d, err := s.Repo.GetByID(ctx, userID, disputeID)
	if err != nil {
		return Dispute{}, err
	}
	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, d); err != nil {
		return Dispute{}, err
	}
	return d, nil
}

// Delete removes a dispute draft.
func (s *Service) Delete(ctx context.Context, userID, disputeID string) error {
	if disputeID == "" {
		return errors.New("disputeID is required")
	}
	return s.Repo.Delete(ctx, userID, disputeID)
}

// ListTemplates returns built-in templates followed by the user's own.
func (s *Service) ListTemplates(ctx context.Context, userID string) ([]Template, error) {
	out := BuiltinTemplates()
	if s.Templates == nil {
		return out, nil
	}
	userTemplates, err := s.Templates.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(out, userTemplates...), nil
}

// CreateTemplate stores a user-authored template.
func (s *Service) CreateTemplate(ctx context.Context, userID string, category, reason, instruction string) (Template, error) {
	if s.Templates == nil {
		return Template{}, errors.New("templates repo not configured")
	}
	if strings.TrimSpace(reason) == "" || strings.TrimSpace(instruction) == "" {
		return Template{}, errors.New("reason and instruction are required")
	}
	t := Template{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    category,
		Reason:      reason,
		Instruction: instruction,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Templates.Create(ctx, t); err != nil {
		return Template{}, err
	}
	return t, nil
}

// DeleteTemplate removes a user-authored template. Built-in templates cannot
// be deleted.
func (s *Service) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	if s.Templates == nil {
		return errors.New("templates repo not configured")
	}
	for _, t := range builtinTemplates {
		if t.ID == templateID {
			return errors.New("built-in templates cannot be deleted")
		}
	}
	return s.Templates.Delete(ctx, userID, templateID)
}
