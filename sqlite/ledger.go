package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kmtan/filings"
)

// Compile-time interface verification.
var _ filings.UploadLedger = (*LedgerService)(nil)

// LedgerService implements filings.UploadLedger using SQLite.
type LedgerService struct {
	db *DB
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(db *DB) *LedgerService {
	return &LedgerService{db: db}
}

// CreateUpload records a completed upload.
func (s *LedgerService) CreateUpload(ctx context.Context, up *filings.Upload) error {
	if err := up.Validate(); err != nil {
		return err
	}

	up.ID = uuid.New().String()
	if up.UploadedAt.IsZero() {
		up.UploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO uploads (id, filename, handle, title, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
	`, up.ID, up.Filename, up.Handle, up.Title, up.UploadedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return filings.Errorf(filings.ECONFLICT, "file %q already uploaded", up.Filename)
	}
	return err
}

// FindUploadByFilename retrieves an upload by filename.
func (s *LedgerService) FindUploadByFilename(ctx context.Context, filename string) (*filings.Upload, error) {
	var up filings.Upload
	var uploadedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, handle, title, uploaded_at
		FROM uploads
		WHERE filename = ?
	`, filename).Scan(&up.ID, &up.Filename, &up.Handle, &up.Title, &uploadedAt)

	if err == sql.ErrNoRows {
		return nil, filings.Errorf(filings.ENOTFOUND, "upload not found")
	}
	if err != nil {
		return nil, err
	}

	up.UploadedAt, err = time.Parse(time.RFC3339, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
	}

	return &up, nil
}

// ListUploads retrieves all uploads, oldest first.
func (s *LedgerService) ListUploads(ctx context.Context) ([]*filings.Upload, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, handle, title, uploaded_at
		FROM uploads
		ORDER BY uploaded_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*filings.Upload
	for rows.Next() {
		var up filings.Upload
		var uploadedAt string
		if err := rows.Scan(&up.ID, &up.Filename, &up.Handle, &up.Title, &uploadedAt); err != nil {
			return nil, err
		}
		up.UploadedAt, err = time.Parse(time.RFC3339, uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
		}
		uploads = append(uploads, &up)
	}
	return uploads, rows.Err()
}
