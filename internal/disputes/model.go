package disputes

import "time"

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusResolved  = "resolved"
)

// Dispute is one saved per-item dispute draft. ItemID must match the scan
// orchestrator's identifier derivation so the presentation layer can
// correlate scan results back to the saved draft.
type Dispute struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ReportID       string    `json:"reportId,omitempty"`
	ItemID         string    `json:"itemId"`
	ItemKind       string    `json:"itemKind"`
	Bureaus        []string  `json:"bureaus,omitempty"`
	Reason         string    `json:"reason"`
	Instruction    string    `json:"instruction"`
	SelectedFields []string  `json:"selectedFields,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Template is a reusable reason/instruction pair. Built-in templates have an
// empty UserID; user-authored templates are scoped to their owner.
type Template struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	Category    string    `json:"category,omitempty"`
	Reason      string    `json:"reason"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"createdAt"`
}
