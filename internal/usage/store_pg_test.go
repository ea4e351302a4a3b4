package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreConsumeIncrementsWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)
	periodStart := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT used, usage_limit, period_start FROM scan_usage").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"used", "usage_limit", "period_start"}).
			AddRow(2, 5, periodStart))
	mock.ExpectExec("UPDATE scan_usage SET used").
		WithArgs(3, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := store.Consume(context.Background(), "user-1", 1)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 3 || u.Limit != 5 {
		t.Fatalf("unexpected usage: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreConsumeAtLimitRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)
	periodStart := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT used, usage_limit, period_start FROM scan_usage").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"used", "usage_limit", "period_start"}).
			AddRow(5, 5, periodStart))
	mock.ExpectRollback()

	if _, err := store.Consume(context.Background(), "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreEnsureInsertsFirstRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT used, usage_limit, period_start FROM scan_usage").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"used", "usage_limit", "period_start"}))
	mock.ExpectExec("INSERT INTO scan_usage").
		WithArgs("user-1", defaultLimit, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	u, err := store.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Used != 0 || u.Limit != defaultLimit || u.Plan != defaultPlan {
		t.Fatalf("unexpected usage: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
