package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizmate/internal/domain"
	"bizmate/internal/service"
	"bizmate/mocks"
)

func TestBoardService_Create(t *testing.T) {
	repo := new(mocks.MockBoardRepo)
	svc := service.NewBoardService(repo)
	id := drafterIdentity()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Board")).Return(nil)

	board, err := svc.Create(context.Background(), &service.BoardInput{
		Identity: id,
		Title:    "Office notice",
		Content:  "The parking lot closes early on Friday.",
	})

	require.NoError(t, err)
	assert.Equal(t, "hong.gildong", board.Writer)
	repo.AssertExpectations(t)
}

func TestBoardService_Update_WriterOnly(t *testing.T) {
	repo := new(mocks.MockBoardRepo)
	svc := service.NewBoardService(repo)

	repo.On("GetByNo", mock.Anything, int64(7)).Return(&domain.Board{
		No:     7,
		Title:  "Office notice",
		Writer: "someone.else",
	}, nil)

	_, err := svc.Update(context.Background(), 7, &service.BoardInput{
		Identity: drafterIdentity(),
		Title:    "hijacked",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBoardService_Delete_AdminOverride(t *testing.T) {
	repo := new(mocks.MockBoardRepo)
	svc := service.NewBoardService(repo)

	repo.On("GetByNo", mock.Anything, int64(7)).Return(&domain.Board{
		No:     7,
		Writer: "someone.else",
	}, nil)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := svc.Delete(context.Background(), 7, adminIdentity())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBoardService_AddComment_UnknownBoard(t *testing.T) {
	repo := new(mocks.MockBoardRepo)
	svc := service.NewBoardService(repo)

	repo.On("GetByNo", mock.Anything, int64(99)).Return(nil, domain.ErrBoardNotFound)

	_, err := svc.AddComment(context.Background(), 99, drafterIdentity(), "hello")
	assert.ErrorIs(t, err, domain.ErrBoardNotFound)
}
