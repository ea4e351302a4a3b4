package usage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed allowance store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Usage, error) {
	return s.ensure(ctx, userID)
}

func (s *pgStore) EnsurePeriod(ctx context.Context, userID string) (Usage, error) {
	return s.ensure(ctx, userID)
}

func (s *pgStore) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	if n <= 0 {
		return s.ensure(ctx, userID)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	u, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}

	if u.Used+n > u.Limit {
		err = ErrLimitReached
		return Usage{}, err
	}
	u.Used += n
	if _, err = tx.ExecContext(ctx, `
UPDATE scan_usage SET used = $1, updated_at = now() WHERE user_id = $2`, u.Used, userID); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) Reset(ctx context.Context, userID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `
INSERT INTO scan_usage (user_id, used, usage_limit, period_start, updated_at)
VALUES ($1, 0, $2, $3, now())
ON CONFLICT (user_id) DO UPDATE SET used = 0, period_start = EXCLUDED.period_start, updated_at = now()`,
		userID, defaultLimit, now); err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return Usage{Plan: defaultPlan, Limit: defaultLimit, Used: 0, ResetsAt: now.Add(allowancePeriod)}, nil
}

func (s *pgStore) ensure(ctx context.Context, userID string) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	u, err := s.lockAndEnsure(ctx, tx, userID)
	if err != nil {
		return Usage{}, err
	}
	if err = tx.Commit(); err != nil {
		return Usage{}, err
	}
	return u, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, userID string) (Usage, error) {
	var used, limit int
	var periodStart time.Time
	row := tx.QueryRowContext(ctx, `
SELECT used, usage_limit, period_start FROM scan_usage WHERE user_id = $1 FOR UPDATE`, userID)
	err := row.Scan(&used, &limit, &periodStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			now := time.Now().UTC()
			if _, err = tx.ExecContext(ctx, `
INSERT INTO scan_usage (user_id, used, usage_limit, period_start) VALUES ($1, 0, $2, $3)`,
				userID, defaultLimit, now); err != nil {
				return Usage{}, err
			}
			return Usage{Plan: defaultPlan, Limit: defaultLimit, Used: 0, ResetsAt: now.Add(allowancePeriod)}, nil
		}
		return Usage{}, err
	}

	now := time.Now().UTC()
	resetsAt := periodStart.UTC().Add(allowancePeriod)
	if !now.Before(resetsAt) {
		used = 0
		periodStart = now
		resetsAt = now.Add(allowancePeriod)
		if _, err = tx.ExecContext(ctx, `
UPDATE scan_usage SET used = 0, period_start = $1, updated_at = now() WHERE user_id = $2`, periodStart, userID); err != nil {
			return Usage{}, err
		}
	}
	return Usage{Plan: defaultPlan, Limit: limit, Used: used, ResetsAt: resetsAt}, nil
}
