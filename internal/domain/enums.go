package domain

// DocType enumerates the routable document types.
type DocType string

const (
	DocTypeLeave          DocType = "LEAVE"
	DocTypePurchase       DocType = "PURCHASE"
	DocTypeExpense        DocType = "EXPENSE"
	DocTypeProjectPlan    DocType = "PROJECT_PLAN"
	DocTypeResignation    DocType = "RESIGNATION"
	DocTypeHRTransfer     DocType = "HR_TRANSFER"
	DocTypeGeneralRequest DocType = "GENERAL_REQUEST"
	DocTypeEstimate       DocType = "ESTIMATE"
)

// ValidDocTypes is the closed set of document types accepted at the API boundary.
var ValidDocTypes = map[DocType]bool{
	DocTypeLeave:          true,
	DocTypePurchase:       true,
	DocTypeExpense:        true,
	DocTypeProjectPlan:    true,
	DocTypeResignation:    true,
	DocTypeHRTransfer:     true,
	DocTypeGeneralRequest: true,
	DocTypeEstimate:       true,
}

// DocStatus represents the persisted routing status of a document.
type DocStatus string

const (
	StatusDraft      DocStatus = "DRAFT"
	StatusInProgress DocStatus = "IN_PROGRESS"
	StatusApproved   DocStatus = "APPROVED"
	StatusRejected   DocStatus = "REJECTED"
	StatusDeleted    DocStatus = "DELETED"
)

// DisplayStatusResubmitted tags a document that re-entered routing after a
// rejection. It is a display alias of IN_PROGRESS, never a persisted status.
const DisplayStatusResubmitted = "RESUBMITTED"

// Decision represents the outcome recorded on a single approval step.
type Decision string

const (
	DecisionPending  Decision = "PENDING"
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// RolePrefix marks claim strings that are roles; unprefixed claim strings are
// treated as fine-grained permissions.
const RolePrefix = "ROLE_"

// AttachmentStatus represents the lifecycle of an uploaded attachment.
type AttachmentStatus string

const (
	AttachmentPending  AttachmentStatus = "pending"
	AttachmentUploaded AttachmentStatus = "uploaded"
	AttachmentDeleted  AttachmentStatus = "deleted"
)

// AllowedContentTypes maps accepted MIME content types to file extensions.
var AllowedContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}
