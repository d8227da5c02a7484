package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizmate/internal/service"
)

// AttachmentHandler handles attachment endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func parseAttachmentID(c *gin.Context) (uuid.UUID, bool) {
	attID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid attachment id")
		return uuid.Nil, false
	}
	return attID, true
}

// Upload handles POST /api/v1/attachments (multipart form: file, optional docId)
func (h *AttachmentHandler) Upload(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}

	var docID *uuid.UUID
	if raw := c.PostForm("docId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid docId")
			return
		}
		docID = &parsed
	}

	att, err := h.attachmentService.Upload(c.Request.Context(), &service.UploadFileInput{
		Identity:   id,
		DocumentID: docID,
		FileHeader: fileHeader,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// Download handles GET /api/v1/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}
	attID, ok := parseAttachmentID(c)
	if !ok {
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), attID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"downloadUrl": url})
}

// Preview handles GET /api/v1/attachments/:id/preview
func (h *AttachmentHandler) Preview(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}
	attID, ok := parseAttachmentID(c)
	if !ok {
		return
	}

	text, err := h.attachmentService.Preview(c.Request.Context(), attID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"text": text})
}

// Delete handles DELETE /api/v1/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	attID, ok := parseAttachmentID(c)
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), attID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}
