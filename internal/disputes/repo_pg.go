package disputes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new dispute.
func (r *PGRepo) Create(ctx context.Context, d Dispute) error {
	const query = `
INSERT INTO disputes (id, user_id, report_id, item_id, item_kind, bureaus, reason, instruction, selected_fields, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	bureaus, err := marshalStringList(d.Bureaus)
	if err != nil {
		return err
	}
	fields, err := marshalStringList(d.SelectedFields)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		d.ID, d.UserID, d.ReportID, d.ItemID, d.ItemKind,
		bureaus, d.Reason, d.Instruction, fields, d.Status,
		d.CreatedAt, d.UpdatedAt,
	)
	return err
}

// GetByID returns a dispute by ID, scoped to the owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, disputeID string) (Dispute, error) {
	const query = `
SELECT id, user_id, report_id, item_id, item_kind, bureaus, reason, instruction, selected_fields, status, created_at, updated_at
FROM disputes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanDispute(r.DB.QueryRowContext(ctx, query, disputeID, userID))
}

// GetByItem returns the dispute saved for a specific report item.
func (r *PGRepo) GetByItem(ctx context.Context, userID, reportID, itemID string) (Dispute, error) {
	const query = `
SELECT id, user_id, report_id, item_id, item_kind, bureaus, reason, instruction, selected_fields, status, created_at, updated_at
FROM disputes
WHERE user_id = $1 AND report_id = $2 AND item_id = $3
LIMIT 1`
	return scanDispute(r.DB.QueryRowContext(ctx, query, userID, reportID, itemID))
}

// ListByUser returns the user's disputes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Dispute, error) {
	const query = `
SELECT id, user_id, report_id, item_id, item_kind, bureaus, reason, instruction, selected_fields, status, created_at, updated_at
FROM disputes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Dispute{}
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of an existing dispute.
func (r *PGRepo) Update(ctx context.Context, d Dispute) error {
	const query = `
UPDATE disputes
SET bureaus = $1, reason = $2, instruction = $3, selected_fields = $4, status = $5, updated_at = $6
WHERE id = $7 AND user_id = $8`
	bureaus, err := marshalStringList(d.Bureaus)
	if err != nil {
		return err
	}
	fields, err := marshalStringList(d.SelectedFields)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		bureaus, d.Reason, d.Instruction, fields, d.Status, d.UpdatedAt,
		d.ID, d.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a dispute.
func (r *PGRepo) Delete(ctx context.Context, userID, disputeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM disputes WHERE id = $1 AND user_id = $2`, disputeID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// PGTemplatesRepo implements TemplatesRepo using Postgres.
type PGTemplatesRepo struct {
	DB *sql.DB
}

// Create inserts a user-authored template.
func (r *PGTemplatesRepo) Create(ctx context.Context, t Template) error {
	const query = `
INSERT INTO dispute_templates (id, user_id, category, reason, instruction, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.UserID, t.Category, t.Reason, t.Instruction, t.CreatedAt)
	return err
}

// ListByUser returns the user's templates ordered oldest-first.
func (r *PGTemplatesRepo) ListByUser(ctx context.Context, userID string) ([]Template, error) {
	const query = `
SELECT id, user_id, category, reason, instruction, created_at
FROM dispute_templates
WHERE user_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Template{}
	for rows.Next() {
		var t Template
		var createdAt time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Category, &t.Reason, &t.Instruction, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt = createdAt.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a user-authored template.
func (r *PGTemplatesRepo) Delete(ctx context.Context, userID, templateID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM dispute_templates WHERE id = $1 AND user_id = $2`, templateID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDispute(row rowScanner) (Dispute, error) {
	var d Dispute
	var bureaus, fields []byte
	var createdAt, updatedAt time.Time
	err := row.Scan(&d.ID, &d.UserID, &d.ReportID, &d.ItemID, &d.ItemKind,
		&bureaus, &d.Reason, &d.Instruction, &fields, &d.Status,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Dispute{}, ErrNotFound
	}
	if err != nil {
		return Dispute{}, err
	}
	if err := unmarshalStringList(bureaus, &d.Bureaus); err != nil {
		return Dispute{}, err
	}
	if err := unmarshalStringList(fields, &d.SelectedFields); err != nil {
		return Dispute{}, err
	}
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()
	return d, nil
}

func marshalStringList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalStringList(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = nil
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimGuest reassigns the guest's disputes to the authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE disputes SET user_id = $1 WHERE user_id = $2`,
		authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	moved, _ := res.RowsAffected()
	return int(moved), nil
}
