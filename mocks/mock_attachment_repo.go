package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizmate/internal/domain"
)

// MockAttachmentRepo is a mock implementation of port.AttachmentRepository.
type MockAttachmentRepo struct {
	mock.Mock
}

func (m *MockAttachmentRepo) Create(ctx context.Context, att *domain.Attachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *MockAttachmentRepo) GetByID(ctx context.Context, attID uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, attID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepo) BindToDocument(ctx context.Context, docID uuid.UUID, attachmentIDs []uuid.UUID) error {
	args := m.Called(ctx, docID, attachmentIDs)
	return args.Error(0)
}

func (m *MockAttachmentRepo) UpdateStatus(ctx context.Context, attID uuid.UUID, status domain.AttachmentStatus) error {
	args := m.Called(ctx, attID, status)
	return args.Error(0)
}

func (m *MockAttachmentRepo) Delete(ctx context.Context, attID uuid.UUID) error {
	args := m.Called(ctx, attID)
	return args.Error(0)
}
