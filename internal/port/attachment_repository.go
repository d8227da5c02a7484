package port

import (
	"context"

	"github.com/google/uuid"

	"bizmate/internal/domain"
)

// AttachmentRepository defines persistence for document attachments.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, attID uuid.UUID) (*domain.Attachment, error)
	ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.Attachment, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attachment, error)
	// BindToDocument back-fills the document reference on attachments that
	// were uploaded before the owning document existed.
	BindToDocument(ctx context.Context, docID uuid.UUID, attachmentIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, attID uuid.UUID, status domain.AttachmentStatus) error
	Delete(ctx context.Context, attID uuid.UUID) error
}
