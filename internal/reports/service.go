package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"creditdispute-backend/internal/extract"
	"creditdispute-backend/internal/shared/storage/object"
	"creditdispute-backend/internal/shared/telemetry"
)

const (
	// SourceJSON marks reports submitted as parsed payloads.
	SourceJSON = "json"
	// SourceUpload marks reports imported from a bureau file export.
	SourceUpload = "upload"
)

// Service owns report snapshot lifecycle.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store, Now: time.Now}
}

// CreateFromPayload persists a parsed report payload and records section counts.
func (s *Service) CreateFromPayload(ctx context.Context, userID string, p Payload) (Report, error) {
	rep := Report{
		ID:                uuid.NewString(),
		UserID:            userID,
		Source:            SourceJSON,
		Payload:           &p,
		AccountCount:      len(p.Accounts),
		PublicRecordCount: len(p.PublicRecords),
		InquiryCount:      len(p.Inquiries),
		CreatedAt:         s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rep); err != nil {
		return Report{}, fmt.Errorf("create report: %w", err)
	}

	telemetry.Info("report.created", map[string]any{
		"report_id":      rep.ID,
		"user_id":        userID,
		"source":         rep.Source,
		"accounts":       rep.AccountCount,
		"public_records": rep.PublicRecordCount,
		"inquiries":      rep.InquiryCount,
	})
	return rep, nil
}

// ImportFile stores an uploaded bureau export, extracts its text, and
// records the report shell. The extracted text sits in object storage until
// the owner attaches a parsed payload.
func (s *Service) ImportFile(ctx context.Context, userID, fileName string, body io.Reader) (Report, error) {
	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, body)
	if err != nil {
		return Report{}, fmt.Errorf("store report file: %w", err)
	}

	if _, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName); err != nil {
		return Report{}, fmt.Errorf("extract report text: %w", err)
	}

	rep := Report{
		ID:         uuid.NewString(),
		UserID:     userID,
		Source:     SourceUpload,
		FileName:   fileName,
		StorageKey: storageKey,
		RawTextKey: storageKey + ".extracted.txt",
		CreatedAt:  s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rep); err != nil {
		return Report{}, fmt.Errorf("create report: %w", err)
	}

	telemetry.Info("report.imported", map[string]any{
		"report_id": rep.ID,
		"user_id":   userID,
		"file_name": fileName,
		"mime_type": mimeType,
		"size":      size,
	})
	return rep, nil
}

// Get returns one report with its payload.
func (s *Service) Get(ctx context.Context, userID, reportID string) (Report, error) {
	return s.Repo.GetByID(ctx, userID, reportID)
}

// List returns the user's reports newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a report snapshot.
func (s *Service) Delete(ctx context.Context, userID, reportID string) error {
	return s.Repo.Delete(ctx, userID, reportID)
}
