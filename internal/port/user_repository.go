package port

import (
	"context"

	"github.com/google/uuid"

	"bizmate/internal/domain"
)

// UserRepository defines persistence for employee accounts.
type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmpNo(ctx context.Context, empNo string) (*domain.User, error)
	// Search matches username, employee number, or full name for the
	// manual-mode approver picker.
	Search(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error)
}
