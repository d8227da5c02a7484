package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNotCurrentApprover  = errors.New("caller is not the current approver")
	ErrNotDrafter          = errors.New("caller is not the document drafter")
	ErrInvalidTransition   = errors.New("invalid document status transition")
	ErrEmptyApprovalLine   = errors.New("approval line must contain at least one step")
	ErrLineOrderInvalid    = errors.New("approval line order must be strictly increasing from 1")
	ErrRejectReasonMissing = errors.New("rejection requires a non-empty reason")
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrAttachmentPending   = errors.New("document references attachments that are still uploading")
	ErrAttachmentBound     = errors.New("attachment belongs to a routed document")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnknownDocType      = errors.New("unknown document type")
	ErrBoardNotFound       = errors.New("board post not found")
	ErrApproverUnknown     = errors.New("approver could not be resolved to a known user")
)
