package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizmate/internal/domain"
	"bizmate/internal/service"
)

// MockApprovalService is a mock implementation of service.ApprovalService.
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) SaveDraft(ctx context.Context, input *service.DraftInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) UpdateDraft(ctx context.Context, docID uuid.UUID, id domain.Identity, title string, patch domain.DocContent, attachmentIDs []uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, docID, id, title, patch, attachmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) Submit(ctx context.Context, input *service.SubmitInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) Get(ctx context.Context, docID uuid.UUID, id domain.Identity) (*service.DocumentView, error) {
	args := m.Called(ctx, docID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentView), args.Error(1)
}

func (m *MockApprovalService) List(ctx context.Context, id domain.Identity, query service.ListQuery) ([]service.DocumentView, int, error) {
	args := m.Called(ctx, id, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]service.DocumentView), args.Int(1), args.Error(2)
}

func (m *MockApprovalService) ResolveLine(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ResolvedStep, error) {
	args := m.Called(ctx, docType, deptCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolvedStep), args.Error(1)
}

func (m *MockApprovalService) Approve(ctx context.Context, input *service.DecideInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) Reject(ctx context.Context, input *service.DecideInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) Resubmit(ctx context.Context, input *service.ResubmitInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockApprovalService) Delete(ctx context.Context, docID uuid.UUID, id domain.Identity) error {
	args := m.Called(ctx, docID, id)
	return args.Error(0)
}
