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

type boardRepo struct {
	db *sqlx.DB
}

// NewBoardRepo creates a new PostgreSQL-backed BoardRepository.
func NewBoardRepo(db *sqlx.DB) port.BoardRepository {
	return &boardRepo{db: db}
}

func (r *boardRepo) Create(ctx context.Context, board *domain.Board) error {
	now := time.Now().UTC()
	board.CreatedAt = now
	board.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO boards (title, content, writer, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING no`,
		board.Title, board.Content, board.Writer, board.CreatedAt, board.UpdatedAt,
	).Scan(&board.No)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: %w", err)
	}
	return nil
}

func (r *boardRepo) GetByNo(ctx context.Context, no int64) (*domain.Board, error) {
	var board domain.Board
	err := r.db.GetContext(ctx, &board,
		"SELECT * FROM boards WHERE no = $1", no)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("boardRepo.GetByNo: %w", err)
	}
	return &board, nil
}

func (r *boardRepo) List(ctx context.Context, keyword string, offset, limit int) ([]domain.Board, int, error) {
	pattern := "%" + keyword + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM boards WHERE title ILIKE $1 OR content ILIKE $1", pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("boardRepo.List count: %w", err)
	}

	var boards []domain.Board
	err = r.db.SelectContext(ctx, &boards,
		`SELECT * FROM boards WHERE title ILIKE $1 OR content ILIKE $1
		 ORDER BY no DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("boardRepo.List: %w", err)
	}
	return boards, total, nil
}

func (r *boardRepo) Update(ctx context.Context, board *domain.Board) error {
	board.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE boards SET title = $1, content = $2, updated_at = $3 WHERE no = $4",
		board.Title, board.Content, board.UpdatedAt, board.No)
	if err != nil {
		return fmt.Errorf("boardRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func (r *boardRepo) Delete(ctx context.Context, no int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE no = $1", no)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func (r *boardRepo) CreateComment(ctx context.Context, comment *domain.BoardComment) error {
	comment.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO board_comments (id, board_no, writer, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.BoardNo, comment.Writer, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("boardRepo.CreateComment: %w", err)
	}
	return nil
}

func (r *boardRepo) ListComments(ctx context.Context, boardNo int64) ([]domain.BoardComment, error) {
	var comments []domain.BoardComment
	err := r.db.SelectContext(ctx, &comments,
		"SELECT * FROM board_comments WHERE board_no = $1 ORDER BY created_at", boardNo)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.ListComments: %w", err)
	}
	return comments, nil
}

func (r *boardRepo) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM board_comments WHERE id = $1", commentID)
	if err != nil {
		return fmt.Errorf("boardRepo.DeleteComment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
