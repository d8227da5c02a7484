package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

// BoardInput is the DTO for creating or editing a bulletin board post.
type BoardInput struct {
	Identity domain.Identity
	Title    string
	Content  string
}

// BoardService defines the bulletin board contract.
type BoardService interface {
	Create(ctx context.Context, input *BoardInput) (*domain.Board, error)
	Get(ctx context.Context, no int64) (*domain.Board, error)
	List(ctx context.Context, keyword string, offset, limit int) ([]domain.Board, int, error)
	Update(ctx context.Context, no int64, input *BoardInput) (*domain.Board, error)
	Delete(ctx context.Context, no int64, id domain.Identity) error

	AddComment(ctx context.Context, boardNo int64, id domain.Identity, content string) (*domain.BoardComment, error)
	ListComments(ctx context.Context, boardNo int64) ([]domain.BoardComment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID, id domain.Identity) error
}

type boardService struct {
	repo port.BoardRepository
}

// NewBoardService creates a new BoardService implementation.
func NewBoardService(repo port.BoardRepository) BoardService {
	return &boardService{repo: repo}
}

func (s *boardService) Create(ctx context.Context, input *BoardInput) (*domain.Board, error) {
	board := &domain.Board{
		Title:   input.Title,
		Content: input.Content,
		Writer:  input.Identity.Username,
	}
	if err := s.repo.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("creating board post: %w", err)
	}
	return board, nil
}

func (s *boardService) Get(ctx context.Context, no int64) (*domain.Board, error) {
	return s.repo.GetByNo(ctx, no)
}

func (s *boardService) List(ctx context.Context, keyword string, offset, limit int) ([]domain.Board, int, error) {
	return s.repo.List(ctx, keyword, offset, limit)
}

func (s *boardService) Update(ctx context.Context, no int64, input *BoardInput) (*domain.Board, error) {
	board, err := s.repo.GetByNo(ctx, no)
	if err != nil {
		return nil, err
	}
	if board.Writer != input.Identity.Username && !IsAdmin(input.Identity) {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		board.Title = input.Title
	}
	if input.Content != "" {
		board.Content = input.Content
	}
	if err := s.repo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("updating board post: %w", err)
	}
	return board, nil
}

func (s *boardService) Delete(ctx context.Context, no int64, id domain.Identity) error {
	board, err := s.repo.GetByNo(ctx, no)
	if err != nil {
		return err
	}
	if board.Writer != id.Username && !IsAdmin(id) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, no)
}

func (s *boardService) AddComment(ctx context.Context, boardNo int64, id domain.Identity, content string) (*domain.BoardComment, error) {
	if _, err := s.repo.GetByNo(ctx, boardNo); err != nil {
		return nil, err
	}
	comment := &domain.BoardComment{
		ID:      uuid.New(),
		BoardNo: boardNo,
		Writer:  id.Username,
		Content: content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

func (s *boardService) ListComments(ctx context.Context, boardNo int64) ([]domain.BoardComment, error) {
	return s.repo.ListComments(ctx, boardNo)
}

func (s *boardService) DeleteComment(ctx context.Context, commentID uuid.UUID, id domain.Identity) error {
	if !IsAdmin(id) {
		return domain.ErrForbidden
	}
	return s.repo.DeleteComment(ctx, commentID)
}
