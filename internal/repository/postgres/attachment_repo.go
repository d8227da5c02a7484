package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, att *domain.Attachment) error {
	att.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attachments (
		id, document_id, uploaded_by, original_name, stored_name,
		s3_bucket, s3_key, file_size, content_type, status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		att.ID, att.DocumentID, att.UploadedBy, att.OriginalName, att.StoredName,
		att.S3Bucket, att.S3Key, att.FileSize, att.ContentType, att.Status, att.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, attID uuid.UUID) (*domain.Attachment, error) {
	var att domain.Attachment
	err := r.db.GetContext(ctx, &att,
		"SELECT * FROM attachments WHERE id = $1 AND status <> $2", attID, domain.AttachmentDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &att, nil
}

func (r *attachmentRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.Attachment, error) {
	var atts []domain.Attachment
	err := r.db.SelectContext(ctx, &atts,
		`SELECT * FROM attachments WHERE document_id = $1 AND status <> $2
		 ORDER BY created_at`, docID, domain.AttachmentDeleted)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByDocument: %w", err)
	}
	return atts, nil
}

func (r *attachmentRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM attachments WHERE id IN (?) AND status <> ?", ids, domain.AttachmentDeleted)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByIDs: %w", err)
	}
	query = r.db.Rebind(query)

	var atts []domain.Attachment
	if err := r.db.SelectContext(ctx, &atts, query, args...); err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByIDs: %w", err)
	}
	return atts, nil
}

func (r *attachmentRepo) BindToDocument(ctx context.Context, docID uuid.UUID, attachmentIDs []uuid.UUID) error {
	if len(attachmentIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		"UPDATE attachments SET document_id = ? WHERE id IN (?) AND document_id IS NULL", docID, attachmentIDs)
	if err != nil {
		return fmt.Errorf("attachmentRepo.BindToDocument: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("attachmentRepo.BindToDocument: %w", err)
	}
	return nil
}

func (r *attachmentRepo) UpdateStatus(ctx context.Context, attID uuid.UUID, status domain.AttachmentStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE attachments SET status = $1 WHERE id = $2", status, attID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAttachmentNotFound
	}
	return nil
}

func (r *attachmentRepo) Delete(ctx context.Context, attID uuid.UUID) error {
	return r.UpdateStatus(ctx, attID, domain.AttachmentDeleted)
}
