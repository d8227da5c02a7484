package port

import (
	"context"

	"github.com/google/uuid"

	"bizmate/internal/domain"
)

// DocumentListFilter narrows a paged document listing.
type DocumentListFilter struct {
	Status    *domain.DocStatus
	Keyword   string
	CreatedBy *uuid.UUID
	// AwaitingUser filters to documents whose current pending step names the
	// given username ("my turn" inbox).
	AwaitingUser string
	Offset       int
	Limit        int
}

// DocumentRepository defines persistence for approval documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter DocumentListFilter) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
}
