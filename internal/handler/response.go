package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizmate/internal/domain"
	"bizmate/internal/form"
	"bizmate/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError reports a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PageRequest echoes the requested page back to the client.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// PageResponse is the envelope for paged listings.
type PageResponse struct {
	DTOList        interface{} `json:"dtoList"`
	PageRequestDTO PageRequest `json:"pageRequestDTO"`
	TotalCount     int         `json:"totalCount"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPage sends a 200 paged listing response.
func RespondPage(c *gin.Context, list interface{}, page, size, total int) {
	c.JSON(http.StatusOK, PageResponse{
		DTOList:        list,
		PageRequestDTO: PageRequest{Page: page, Size: size},
		TotalCount:     total,
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrNotCurrentApprover):
		return http.StatusForbidden, "NOT_CURRENT_APPROVER", "it is not your turn to decide on this document"
	case errors.Is(err, domain.ErrNotDrafter):
		return http.StatusForbidden, "NOT_DRAFTER", "only the drafter may perform this action"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "document status does not allow this action"
	case errors.Is(err, domain.ErrEmptyApprovalLine):
		return http.StatusBadRequest, "EMPTY_APPROVAL_LINE", "approval line must contain at least one step"
	case errors.Is(err, domain.ErrLineOrderInvalid):
		return http.StatusBadRequest, "INVALID_LINE_ORDER", "approval line step orders must be strictly increasing"
	case errors.Is(err, domain.ErrRejectReasonMissing):
		return http.StatusBadRequest, "REJECT_REASON_REQUIRED", "a rejection reason is required"
	case errors.Is(err, domain.ErrApproverUnknown):
		return http.StatusBadRequest, "UNKNOWN_APPROVER", "approver could not be resolved to an employee"
	case errors.Is(err, domain.ErrUnknownDocType):
		return http.StatusBadRequest, "UNKNOWN_DOC_TYPE", "unknown document type"
	case errors.Is(err, domain.ErrAttachmentNotFound):
		return http.StatusNotFound, "ATTACHMENT_NOT_FOUND", "attachment not found"
	case errors.Is(err, domain.ErrAttachmentPending):
		return http.StatusConflict, "ATTACHMENT_PENDING", "an attachment upload has not finished"
	case errors.Is(err, domain.ErrAttachmentBound):
		return http.StatusConflict, "ATTACHMENT_BOUND", "attachment belongs to a routed document"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrBoardNotFound):
		return http.StatusNotFound, "BOARD_NOT_FOUND", "board post not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Form validation errors carry their field details.
func HandleError(c *gin.Context, err error) {
	var vErr *form.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]FieldError, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			fields = append(fields, FieldError{Field: f.Field, Message: f.Message})
		}
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   &APIError{Code: "VALIDATION_ERROR", Message: vErr.Error(), Fields: fields},
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// requireIdentity extracts the caller's identity or writes a 401.
func requireIdentity(c *gin.Context) (domain.Identity, bool) {
	id, err := middleware.GetIdentity(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity context")
		return domain.Identity{}, false
	}
	return id, true
}
