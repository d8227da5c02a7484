package port

import "context"

// ApprovalNotice carries the fields rendered into a routing notification.
type ApprovalNotice struct {
	ToEmail    string
	ToName     string
	DocID      string
	DocTitle   string
	DocType    string
	ActorName  string
	Reason     string
}

// EmailSender defines the contract for routing notifications.
type EmailSender interface {
	// SendApprovalRequested notifies the approver whose turn has arrived.
	SendApprovalRequested(ctx context.Context, notice ApprovalNotice) error
	// SendDocumentRejected notifies the drafter of a rejection with its reason.
	SendDocumentRejected(ctx context.Context, notice ApprovalNotice) error
	// SendDocumentApproved notifies the drafter of final approval.
	SendDocumentApproved(ctx context.Context, notice ApprovalNotice) error
}
