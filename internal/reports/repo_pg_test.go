package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rep := Report{
		ID:           "rep-1",
		UserID:       "user-1",
		Source:       SourceJSON,
		Payload:      &Payload{Accounts: []map[string]any{{"CreditLiabilityID": "a1"}}},
		AccountCount: 1,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO reports").
		WithArgs(
			rep.ID, rep.UserID, rep.Source, "", "", "",
			sqlmock.AnyArg(), // payload json
			rep.AccountCount, 0, 0, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rep); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDUnmarshalsPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "source", "file_name", "storage_key", "raw_text_key", "payload",
		"account_count", "public_record_count", "inquiry_count", "created_at",
	}).AddRow(
		"rep-1", "user-1", SourceJSON, "", "", "",
		[]byte(`{"CREDIT_LIABILITY":[{"CreditLiabilityID":"a1"}]}`),
		1, 0, 0, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM reports").
		WithArgs("rep-1", "user-1").
		WillReturnRows(rows)

	rep, err := repo.GetByID(context.Background(), "user-1", "rep-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rep.Payload == nil || len(rep.Payload.Accounts) != 1 {
		t.Fatalf("payload not unmarshaled: %+v", rep)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteSoftDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE reports SET deleted_at").
		WithArgs("rep-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "user-1", "rep-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec("UPDATE reports SET deleted_at").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
