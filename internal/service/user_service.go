package service

import (
	"context"

	"github.com/google/uuid"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

// UserService exposes employee lookup for the approver picker and profile
// views.
type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Search(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *userService) Search(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error) {
	return s.repo.Search(ctx, keyword, offset, limit)
}
