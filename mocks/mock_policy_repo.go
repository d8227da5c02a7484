package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizmate/internal/domain"
)

// MockPolicyRepo is a mock implementation of port.PolicyRepository.
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) ListSteps(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ApprovalPolicyStep, error) {
	args := m.Called(ctx, docType, deptCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalPolicyStep), args.Error(1)
}
