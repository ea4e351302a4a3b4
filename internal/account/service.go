package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"creditdispute-backend/internal/disputes"
	"creditdispute-backend/internal/reports"
)

// Service migrates data created under a guest identity to the account the
// visitor eventually signs in with.
type Service struct {
	ReportRepo  reports.Repo
	DisputeRepo disputes.Repo
}

type ClaimResult struct {
	MigratedReports  int `json:"migratedReports"`
	MigratedDisputes int `json:"migratedDisputes"`
}

func NewService(reportRepo reports.Repo, disputeRepo disputes.Repo) *Service {
	return &Service{ReportRepo: reportRepo, DisputeRepo: disputeRepo}
}

// ClaimGuest reassigns the guest's reports and dispute drafts to the
// authenticated user. When both repos share a Postgres connection the move
// happens in one transaction so a crash cannot strand half the data.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if reportPG, ok := s.ReportRepo.(*reports.PGRepo); ok && reportPG != nil && reportPG.DB != nil {
		if disputePG, ok := s.DisputeRepo.(*disputes.PGRepo); ok && disputePG != nil && disputePG.DB != nil {
			return claimWithTx(ctx, reportPG.DB, guestUserID, authedUserID)
		}
	}

	reportCount, err := claimReports(ctx, s.ReportRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	disputeCount, err := claimDisputes(ctx, s.DisputeRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedReports: reportCount, MigratedDisputes: disputeCount}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	reportRes, err := tx.ExecContext(ctx, `UPDATE reports SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	reportCount, _ := reportRes.RowsAffected()

	disputeRes, err := tx.ExecContext(ctx, `UPDATE disputes SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	disputeCount, _ := disputeRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedReports: int(reportCount), MigratedDisputes: int(disputeCount)}, nil
}

type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

func claimReports(ctx context.Context, repo reports.Repo, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("reports repo does not support claim")
}

func claimDisputes(ctx context.Context, repo disputes.Repo, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("disputes repo does not support claim")
}
