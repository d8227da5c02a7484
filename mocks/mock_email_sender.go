package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizmate/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendApprovalRequested(ctx context.Context, notice port.ApprovalNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockEmailSender) SendDocumentRejected(ctx context.Context, notice port.ApprovalNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockEmailSender) SendDocumentApproved(ctx context.Context, notice port.ApprovalNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
