package port

import (
	"context"

	"github.com/google/uuid"

	"bizmate/internal/domain"
)

// BoardRepository defines persistence for bulletin board posts and comments.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByNo(ctx context.Context, no int64) (*domain.Board, error)
	List(ctx context.Context, keyword string, offset, limit int) ([]domain.Board, int, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, no int64) error

	CreateComment(ctx context.Context, comment *domain.BoardComment) error
	ListComments(ctx context.Context, boardNo int64) ([]domain.BoardComment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}
