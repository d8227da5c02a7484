package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizmate/internal/domain"
)

// MockBoardRepo is a mock implementation of port.BoardRepository.
type MockBoardRepo struct {
	mock.Mock
}

func (m *MockBoardRepo) Create(ctx context.Context, board *domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepo) GetByNo(ctx context.Context, no int64) (*domain.Board, error) {
	args := m.Called(ctx, no)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *MockBoardRepo) List(ctx context.Context, keyword string, offset, limit int) ([]domain.Board, int, error) {
	args := m.Called(ctx, keyword, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Board), args.Int(1), args.Error(2)
}

func (m *MockBoardRepo) Update(ctx context.Context, board *domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepo) Delete(ctx context.Context, no int64) error {
	args := m.Called(ctx, no)
	return args.Error(0)
}

func (m *MockBoardRepo) CreateComment(ctx context.Context, comment *domain.BoardComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockBoardRepo) ListComments(ctx context.Context, boardNo int64) ([]domain.BoardComment, error) {
	args := m.Called(ctx, boardNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardComment), args.Error(1)
}

func (m *MockBoardRepo) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}
