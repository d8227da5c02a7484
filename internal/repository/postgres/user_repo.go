package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE lower(username) = lower($1)", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByUsername: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmpNo(ctx context.Context, empNo string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE emp_no = $1", empNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmpNo: %w", err)
	}
	return &user, nil
}

func (r *userRepo) Search(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error) {
	pattern := "%" + keyword + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM users
		 WHERE is_active AND (username ILIKE $1 OR emp_no ILIKE $1 OR full_name ILIKE $1)`,
		pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.Search count: %w", err)
	}

	var users []domain.User
	err = r.db.SelectContext(ctx, &users,
		`SELECT * FROM users
		 WHERE is_active AND (username ILIKE $1 OR emp_no ILIKE $1 OR full_name ILIKE $1)
		 ORDER BY full_name LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.Search: %w", err)
	}
	return users, total, nil
}
