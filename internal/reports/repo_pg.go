package reports

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

// Create inserts a new report snapshot.
func (r *PGRepo) Create(ctx context.Context, rep Report) error {
	const query = `
INSERT INTO reports (id, user_id, source, file_name, storage_key, raw_text_key, payload,
	account_count, public_record_count, inquiry_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	payload, err := marshalPayload(rep.Payload)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		rep.ID, rep.UserID, rep.Source, rep.FileName, rep.StorageKey, rep.RawTextKey, payload,
		rep.AccountCount, rep.PublicRecordCount, rep.InquiryCount, rep.CreatedAt,
	)
	return err
}

// GetByID returns a report by ID, scoped to the owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, reportID string) (Report, error) {
	const query = `
SELECT id, user_id, source, file_name, storage_key, raw_text_key, payload,
	account_count, public_record_count, inquiry_count, created_at
FROM reports
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
LIMIT 1`
	return scanReport(r.DB.QueryRowContext(ctx, query, reportID, userID))
}

// ListByUser returns the user's reports ordered newest-first, payloads
// omitted to keep list responses small.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	const query = `
SELECT id, user_id, source, file_name, storage_key, raw_text_key, NULL::jsonb,
	account_count, public_record_count, inquiry_count, created_at
FROM reports
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Delete soft-deletes a report.
func (r *PGRepo) Delete(ctx context.Context, userID, reportID string) error {
	const query = `
UPDATE reports SET deleted_at = now()
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, reportID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (Report, error) {
	var rep Report
	var payload []byte
	var createdAt time.Time
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Source, &rep.FileName, &rep.StorageKey, &rep.RawTextKey, &payload,
		&rep.AccountCount, &rep.PublicRecordCount, &rep.InquiryCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	if len(payload) > 0 {
		var p Payload
		if err := json.Unmarshal(payload, &p); err != nil {
			return Report{}, err
		}
		rep.Payload = &p
	}
	rep.CreatedAt = createdAt.UTC()
	return rep, nil
}

func marshalPayload(p *Payload) (any, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ClaimGuest reassigns the guest's reports to the authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE reports SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`,
		authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	moved, _ := res.RowsAffected()
	return int(moved), nil
}
