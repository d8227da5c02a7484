package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizmate/internal/approval"
	"bizmate/internal/domain"
	"bizmate/internal/export"
	"bizmate/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ApprovalHandler handles document routing endpoints.
type ApprovalHandler struct {
	approvalService service.ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

type lineEntryRequest struct {
	ApproverID   string `json:"approverId" binding:"required"`
	ApproverName string `json:"approverName"`
}

type draftRequest struct {
	Title         string                 `json:"title" binding:"required"`
	DocType       string                 `json:"docType" binding:"required"`
	DocContent    map[string]interface{} `json:"docContent"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds"`
}

type draftPatchRequest struct {
	Title         string                 `json:"title"`
	DocContent    map[string]interface{} `json:"docContent"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds"`
}

type submitRequest struct {
	DraftID       *uuid.UUID             `json:"draftId"`
	Title         string                 `json:"title"`
	DocType       string                 `json:"docType"`
	DocContent    map[string]interface{} `json:"docContent"`
	ApprovalLine  []lineEntryRequest     `json:"approvalLine"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds"`
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type resubmitRequest struct {
	Title         string                 `json:"title"`
	DocContent    map[string]interface{} `json:"docContent"`
	ApprovalLine  []lineEntryRequest     `json:"approvalLine"`
	AttachmentIDs []uuid.UUID            `json:"attachmentIds"`
}

func toLineEntries(reqs []lineEntryRequest) []approval.LineEntry {
	entries := make([]approval.LineEntry, 0, len(reqs))
	for _, r := range reqs {
		entries = append(entries, approval.LineEntry{ApproverID: r.ApproverID, ApproverName: r.ApproverName})
	}
	return entries
}

func parsePage(c *gin.Context) (page, size, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size, (page - 1) * size
}

func parseDocID(c *gin.Context) (uuid.UUID, bool) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return uuid.Nil, false
	}
	return docID, true
}

// SaveDraft handles POST /api/v1/approvals/draft
func (h *ApprovalHandler) SaveDraft(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.approvalService.SaveDraft(c.Request.Context(), &service.DraftInput{
		Identity:      id,
		Title:         req.Title,
		DocType:       domain.DocType(req.DocType),
		DocContent:    req.DocContent,
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// UpdateDraft handles PUT /api/v1/approvals/draft/:id
func (h *ApprovalHandler) UpdateDraft(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	var req draftPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.approvalService.UpdateDraft(c.Request.Context(), docID, id, req.Title, req.DocContent, req.AttachmentIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Submit handles POST /api/v1/approvals
func (h *ApprovalHandler) Submit(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.DraftID == nil && (req.Title == "" || req.DocType == "") {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "title and docType are required when not submitting a draft")
		return
	}

	doc, err := h.approvalService.Submit(c.Request.Context(), &service.SubmitInput{
		Identity:      id,
		DraftID:       req.DraftID,
		Title:         req.Title,
		DocType:       domain.DocType(req.DocType),
		DocContent:    req.DocContent,
		ApprovalLine:  toLineEntries(req.ApprovalLine),
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// Get handles GET /api/v1/approvals/:id
func (h *ApprovalHandler) Get(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	view, err := h.approvalService.Get(c.Request.Context(), docID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// List handles GET /api/v1/approvals
func (h *ApprovalHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	page, size, offset := parsePage(c)
	query := service.ListQuery{
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Mine:     c.Query("mine") == "true",
		Awaiting: c.Query("awaiting") == "true",
		Offset:   offset,
		Limit:    size,
	}

	views, total, err := h.approvalService.List(c.Request.Context(), id, query)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPage(c, views, page, size, total)
}

// ResolveLine handles GET /api/v1/approvals/line
func (h *ApprovalHandler) ResolveLine(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	docType := domain.DocType(c.Query("docType"))
	deptCode := c.DefaultQuery("deptCode", id.DeptCode)

	steps, err := h.approvalService.ResolveLine(c.Request.Context(), docType, deptCode)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, steps)
}

// Approve handles POST /api/v1/approvals/:id/approve
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, false, false)
}

// Reject handles POST /api/v1/approvals/:id/reject
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, true, false)
}

// ForceApprove handles POST /api/v1/approvals/:id/force-approve (admin only)
func (h *ApprovalHandler) ForceApprove(c *gin.Context) {
	h.decide(c, false, true)
}

// ForceReject handles POST /api/v1/approvals/:id/force-reject (admin only)
func (h *ApprovalHandler) ForceReject(c *gin.Context) {
	h.decide(c, true, true)
}

func (h *ApprovalHandler) decide(c *gin.Context, reject, force bool) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	var comment string
	if reject {
		var req rejectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		comment = req.Reason
	} else {
		// Approval comment is optional; an absent body is fine.
		var req decisionRequest
		_ = c.ShouldBindJSON(&req)
		comment = req.Comment
	}

	input := &service.DecideInput{Identity: id, DocID: docID, Comment: comment, Force: force}
	var (
		doc *domain.Document
		err error
	)
	if reject {
		doc, err = h.approvalService.Reject(c.Request.Context(), input)
	} else {
		doc, err = h.approvalService.Approve(c.Request.Context(), input)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Resubmit handles POST /api/v1/approvals/:id/resubmit
func (h *ApprovalHandler) Resubmit(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	var req resubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.approvalService.Resubmit(c.Request.Context(), &service.ResubmitInput{
		Identity:      id,
		DocID:         docID,
		Title:         req.Title,
		DocContent:    req.DocContent,
		ApprovalLine:  toLineEntries(req.ApprovalLine),
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/approvals/:id (admin only)
func (h *ApprovalHandler) Delete(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	docID, ok := parseDocID(c)
	if !ok {
		return
	}

	if err := h.approvalService.Delete(c.Request.Context(), docID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Export handles GET /api/v1/approvals/export
func (h *ApprovalHandler) Export(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	query := service.ListQuery{
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Mine:     c.Query("mine") == "true",
		Awaiting: c.Query("awaiting") == "true",
		Offset:   0,
		Limit:    maxPageSize,
	}

	// The export covers the whole filtered set, so page through it.
	var docs []domain.Document
	for {
		views, total, err := h.approvalService.List(c.Request.Context(), id, query)
		if err != nil {
			HandleError(c, err)
			return
		}
		for _, v := range views {
			docs = append(docs, *v.Document)
		}
		query.Offset += len(views)
		if len(views) == 0 || query.Offset >= total {
			break
		}
	}

	filename := fmt.Sprintf("approvals-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteDocumentsXLSX(c.Writer, docs); err != nil {
		HandleError(c, err)
	}
}
