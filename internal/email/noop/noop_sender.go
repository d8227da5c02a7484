package noop

import (
	"context"
	"log"

	"bizmate/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendApprovalRequested(_ context.Context, notice port.ApprovalNotice) error {
	log.Printf("[NOOP EMAIL] Approval requested for %s (%s): doc %s %q",
		notice.ToName, notice.ToEmail, notice.DocID, notice.DocTitle)
	return nil
}

func (s *noopSender) SendDocumentRejected(_ context.Context, notice port.ApprovalNotice) error {
	log.Printf("[NOOP EMAIL] Document rejected for %s (%s): doc %s %q reason=%q",
		notice.ToName, notice.ToEmail, notice.DocID, notice.DocTitle, notice.Reason)
	return nil
}

func (s *noopSender) SendDocumentApproved(_ context.Context, notice port.ApprovalNotice) error {
	log.Printf("[NOOP EMAIL] Document approved for %s (%s): doc %s %q",
		notice.ToName, notice.ToEmail, notice.DocID, notice.DocTitle)
	return nil
}
