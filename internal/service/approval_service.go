package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bizmate/internal/approval"
	"bizmate/internal/domain"
	"bizmate/internal/form"
	"bizmate/internal/port"
)

// DraftInput is the DTO for saving a document without routing it.
type DraftInput struct {
	Identity      domain.Identity
	Title         string
	DocType       domain.DocType
	DocContent    domain.DocContent
	AttachmentIDs []uuid.UUID
}

// SubmitInput is the DTO for submitting a document into routing, either from
// scratch or from a previously saved draft.
type SubmitInput struct {
	Identity domain.Identity
	DraftID  *uuid.UUID
	Title    string
	DocType  domain.DocType
	// DocContent is merged over the draft's content when DraftID is set.
	DocContent domain.DocContent
	// ApprovalLine carries manual-mode entries. When empty the line is
	// resolved from the routing policy.
	ApprovalLine  []approval.LineEntry
	AttachmentIDs []uuid.UUID
}

// DecideInput is the DTO for an approve or reject action at the current step.
type DecideInput struct {
	Identity domain.Identity
	DocID    uuid.UUID
	Comment  string
	// Force bypasses the approver-identity check (admin only, verified by
	// the caller).
	Force bool
}

// ResubmitInput is the DTO for re-opening a rejected document as a new
// routing cycle.
type ResubmitInput struct {
	Identity      domain.Identity
	DocID         uuid.UUID
	Title         string
	DocContent    domain.DocContent
	ApprovalLine  []approval.LineEntry
	AttachmentIDs []uuid.UUID
}

// ListQuery narrows a document listing for the acting identity.
type ListQuery struct {
	Status  string
	Keyword string
	// Mine restricts to documents drafted by the caller.
	Mine bool
	// Awaiting restricts to documents whose current step names the caller.
	Awaiting bool
	Offset   int
	Limit    int
}

// DocumentView is a fetched document decorated with its attachments and the
// caller's advisory flags. The flags mirror what the server enforces; a
// caller acting against a stale flag still receives the authoritative 403.
type DocumentView struct {
	*domain.Document
	DisplayStatus     string              `json:"displayStatus"`
	Attachments       []domain.Attachment `json:"attachments"`
	IsCurrentApprover bool                `json:"isCurrentApprover"`
	CanResubmit       bool                `json:"canResubmit"`
}

// ApprovalService defines the document routing contract.
type ApprovalService interface {
	SaveDraft(ctx context.Context, input *DraftInput) (*domain.Document, error)
	UpdateDraft(ctx context.Context, docID uuid.UUID, id domain.Identity, title string, patch domain.DocContent, attachmentIDs []uuid.UUID) (*domain.Document, error)
	Submit(ctx context.Context, input *SubmitInput) (*domain.Document, error)
	Get(ctx context.Context, docID uuid.UUID, id domain.Identity) (*DocumentView, error)
	List(ctx context.Context, id domain.Identity, query ListQuery) ([]DocumentView, int, error)
	ResolveLine(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ResolvedStep, error)
	Approve(ctx context.Context, input *DecideInput) (*domain.Document, error)
	Reject(ctx context.Context, input *DecideInput) (*domain.Document, error)
	Resubmit(ctx context.Context, input *ResubmitInput) (*domain.Document, error)
	Delete(ctx context.Context, docID uuid.UUID, id domain.Identity) error
}

type approvalService struct {
	docRepo    port.DocumentRepository
	attRepo    port.AttachmentRepository
	userRepo   port.UserRepository
	policyRepo port.PolicyRepository
	sender     port.EmailSender
}

// NewApprovalService creates a new ApprovalService implementation.
func NewApprovalService(
	docRepo port.DocumentRepository,
	attRepo port.AttachmentRepository,
	userRepo port.UserRepository,
	policyRepo port.PolicyRepository,
	sender port.EmailSender,
) ApprovalService {
	return &approvalService{
		docRepo:    docRepo,
		attRepo:    attRepo,
		userRepo:   userRepo,
		policyRepo: policyRepo,
		sender:     sender,
	}
}

// prepareContent shapes caller-supplied content the way the form composer
// does: computed keys stripped, drafter fields initialized once, computed
// fields recomputed from their inputs.
func prepareContent(docType domain.DocType, content domain.DocContent, id domain.Identity) (domain.DocContent, error) {
	content = form.StripComputed(docType, content)
	content = form.InitDrafterFields(content, id, time.Now().UTC())
	return form.ApplyComputed(docType, content)
}

func (s *approvalService) SaveDraft(ctx context.Context, input *DraftInput) (*domain.Document, error) {
	if !domain.ValidDocTypes[input.DocType] {
		return nil, domain.ErrUnknownDocType
	}

	content, err := prepareContent(input.DocType, input.DocContent, input.Identity)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:              uuid.New(),
		Title:           input.Title,
		DocType:         input.DocType,
		Status:          domain.StatusDraft,
		DocContent:      content,
		ApprovalLine:    domain.ApprovalLine{},
		LineHistory:     domain.LineHistory{},
		CreatedBy:       input.Identity.UserID,
		CreatorUsername: input.Identity.Username,
		CreatorEmpNo:    input.Identity.EmpNo,
		CreatorName:     input.Identity.FullName,
		CreatorDeptName: input.Identity.DeptName,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating draft: %w", err)
	}
	if err := s.attRepo.BindToDocument(ctx, doc.ID, input.AttachmentIDs); err != nil {
		return nil, fmt.Errorf("binding attachments: %w", err)
	}
	return doc, nil
}

func (s *approvalService) UpdateDraft(ctx context.Context, docID uuid.UUID, id domain.Identity, title string, patch domain.DocContent, attachmentIDs []uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusDraft {
		return nil, domain.ErrInvalidTransition
	}
	if !approval.CanResubmit(doc, id) {
		return nil, domain.ErrNotDrafter
	}

	if title != "" {
		doc.Title = title
	}
	merged := form.MergeContent(doc.DocContent, form.StripComputed(doc.DocType, patch))
	doc.DocContent, err = form.ApplyComputed(doc.DocType, merged)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("updating draft: %w", err)
	}
	if err := s.attRepo.BindToDocument(ctx, doc.ID, attachmentIDs); err != nil {
		return nil, fmt.Errorf("binding attachments: %w", err)
	}
	return doc, nil
}

func (s *approvalService) Submit(ctx context.Context, input *SubmitInput) (*domain.Document, error) {
	var doc *domain.Document

	if input.DraftID != nil {
		existing, err := s.docRepo.GetByID(ctx, *input.DraftID)
		if err != nil {
			return nil, err
		}
		if existing.Status != domain.StatusDraft {
			return nil, domain.ErrInvalidTransition
		}
		if !approval.CanResubmit(existing, input.Identity) {
			return nil, domain.ErrNotDrafter
		}
		if input.Title != "" {
			existing.Title = input.Title
		}
		existing.DocContent = form.MergeContent(existing.DocContent, form.StripComputed(existing.DocType, input.DocContent))
		doc = existing
	} else {
		if !domain.ValidDocTypes[input.DocType] {
			return nil, domain.ErrUnknownDocType
		}
		doc = &domain.Document{
			ID:              uuid.New(),
			Title:           input.Title,
			DocType:         input.DocType,
			DocContent:      input.DocContent,
			LineHistory:     domain.LineHistory{},
			CreatedBy:       input.Identity.UserID,
			CreatorUsername: input.Identity.Username,
			CreatorEmpNo:    input.Identity.EmpNo,
			CreatorName:     input.Identity.FullName,
			CreatorDeptName: input.Identity.DeptName,
		}
	}

	content, err := prepareContent(doc.DocType, doc.DocContent, input.Identity)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(doc.DocType, content); err != nil {
		return nil, err
	}
	doc.DocContent = content

	if err := s.requireSettledAttachments(ctx, doc.ID, input.AttachmentIDs); err != nil {
		return nil, err
	}

	line, err := s.buildLine(ctx, doc.DocType, input.Identity.DeptCode, input.ApprovalLine)
	if err != nil {
		return nil, err
	}

	if input.DraftID != nil && !approval.CanTransition(domain.StatusDraft, domain.StatusInProgress) {
		return nil, domain.ErrInvalidTransition
	}

	doc.Status = domain.StatusInProgress
	doc.ApprovalLine = line
	doc.CurrentApproverIndex = 0

	if input.DraftID != nil {
		err = s.docRepo.Update(ctx, doc)
	} else {
		err = s.docRepo.Create(ctx, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("submitting document: %w", err)
	}
	if err := s.attRepo.BindToDocument(ctx, doc.ID, input.AttachmentIDs); err != nil {
		return nil, fmt.Errorf("binding attachments: %w", err)
	}

	s.notifyApprover(ctx, doc, line[0].ApproverID, input.Identity.FullName)
	return doc, nil
}

// requireSettledAttachments refuses to route a document while any referenced
// attachment has not finished uploading.
func (s *approvalService) requireSettledAttachments(ctx context.Context, docID uuid.UUID, extraIDs []uuid.UUID) error {
	atts, err := s.attRepo.ListByDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("listing attachments: %w", err)
	}
	extra, err := s.attRepo.ListByIDs(ctx, extraIDs)
	if err != nil {
		return fmt.Errorf("listing attachments: %w", err)
	}
	for _, att := range append(atts, extra...) {
		if att.Status != domain.AttachmentUploaded {
			return domain.ErrAttachmentPending
		}
	}
	return nil
}

// buildLine produces the canonical approval line for a submission. Manual
// entries take precedence; otherwise the routing policy is consulted.
func (s *approvalService) buildLine(ctx context.Context, docType domain.DocType, deptCode string, manual []approval.LineEntry) (domain.ApprovalLine, error) {
	entries := manual
	if len(entries) == 0 {
		resolved, err := s.ResolveLine(ctx, docType, deptCode)
		if err != nil {
			return nil, fmt.Errorf("resolving approval line: %w", err)
		}
		entries = approval.FromResolved(resolved)
	} else {
		normalized, err := s.normalizeEntries(ctx, entries)
		if err != nil {
			return nil, err
		}
		entries = normalized
	}

	line := approval.NormalizeLine(entries)
	if err := approval.ValidateLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

// normalizeEntries resolves manual entries to the canonical identity type:
// approverId becomes the username even when the drafter entered an employee
// number.
func (s *approvalService) normalizeEntries(ctx context.Context, entries []approval.LineEntry) ([]approval.LineEntry, error) {
	out := make([]approval.LineEntry, 0, len(entries))
	for _, e := range entries {
		if e.ApproverID == "" {
			return nil, domain.ErrApproverUnknown
		}
		user, err := s.userRepo.GetByUsername(ctx, e.ApproverID)
		if errors.Is(err, domain.ErrNotFound) {
			user, err = s.userRepo.GetByEmpNo(ctx, e.ApproverID)
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrApproverUnknown
			}
			return nil, fmt.Errorf("resolving approver %q: %w", e.ApproverID, err)
		}
		out = append(out, approval.LineEntry{ApproverID: user.Username, ApproverName: user.FullName})
	}
	return out, nil
}

func (s *approvalService) ResolveLine(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ResolvedStep, error) {
	if !domain.ValidDocTypes[docType] {
		return nil, domain.ErrUnknownDocType
	}

	steps, err := s.policyRepo.ListSteps(ctx, docType, deptCode)
	if err != nil {
		// A broken policy lookup must not block drafting; an empty line
		// signals manual mode to the caller.
		log.Printf("approvalService.ResolveLine: policy lookup failed for %s/%s: %v", docType, deptCode, err)
		return []domain.ResolvedStep{}, nil
	}

	resolved := make([]domain.ResolvedStep, 0, len(steps))
	for i, step := range steps {
		name := step.ApproverUsername
		if user, err := s.userRepo.GetByUsername(ctx, step.ApproverUsername); err == nil {
			name = user.FullName
		}
		resolved = append(resolved, domain.ResolvedStep{
			Order:        i + 1,
			DeptName:     step.ApproverDeptName,
			Position:     step.ApproverPosition,
			ApproverID:   step.ApproverUsername,
			ApproverName: name,
		})
	}
	return resolved, nil
}

func (s *approvalService) Get(ctx context.Context, docID uuid.UUID, id domain.Identity) (*DocumentView, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.Status == domain.StatusDeleted && !IsAdmin(id) {
		return nil, domain.ErrDocumentNotFound
	}
	return s.view(ctx, doc, id)
}

func (s *approvalService) view(ctx context.Context, doc *domain.Document, id domain.Identity) (*DocumentView, error) {
	atts, err := s.attRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return &DocumentView{
		Document:          doc,
		DisplayStatus:     doc.DisplayStatus(),
		Attachments:       atts,
		IsCurrentApprover: approval.IsCurrentApprover(doc, id),
		CanResubmit:       approval.CanResubmit(doc, id),
	}, nil
}

func (s *approvalService) List(ctx context.Context, id domain.Identity, query ListQuery) ([]DocumentView, int, error) {
	filter := port.DocumentListFilter{
		Keyword: query.Keyword,
		Offset:  query.Offset,
		Limit:   query.Limit,
	}
	if query.Status != "" {
		status := domain.DocStatus(query.Status)
		filter.Status = &status
	}
	if query.Mine {
		createdBy := id.UserID
		filter.CreatedBy = &createdBy
	}
	if query.Awaiting {
		filter.AwaitingUser = id.Username
	}

	docs, total, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]DocumentView, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		views = append(views, DocumentView{
			Document:          &doc,
			DisplayStatus:     doc.DisplayStatus(),
			IsCurrentApprover: approval.IsCurrentApprover(&doc, id),
			CanResubmit:       approval.CanResubmit(&doc, id),
		})
	}
	return views, total, nil
}

func (s *approvalService) Approve(ctx context.Context, input *DecideInput) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, input.DocID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusInProgress {
		return nil, domain.ErrInvalidTransition
	}
	if !input.Force && !approval.IsCurrentApprover(doc, input.Identity) {
		return nil, domain.ErrNotCurrentApprover
	}

	now := time.Now().UTC()
	idx := doc.CurrentApproverIndex
	// Force skips the approver check, so the index is not yet validated.
	if idx < 0 || idx >= len(doc.ApprovalLine) {
		return nil, domain.ErrInvalidTransition
	}
	doc.ApprovalLine[idx].Decision = domain.DecisionApproved
	doc.ApprovalLine[idx].Comment = input.Comment
	doc.ApprovalLine[idx].DecidedAt = &now

	if idx == len(doc.ApprovalLine)-1 {
		if !approval.CanTransition(doc.Status, domain.StatusApproved) {
			return nil, domain.ErrInvalidTransition
		}
		doc.Status = domain.StatusApproved
		doc.CompletedAt = &now
	} else {
		doc.CurrentApproverIndex = idx + 1
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("recording approval: %w", err)
	}

	if doc.Status == domain.StatusApproved {
		s.notifyDrafter(ctx, doc, input.Identity.FullName, "")
	} else {
		s.notifyApprover(ctx, doc, doc.ApprovalLine[doc.CurrentApproverIndex].ApproverID, input.Identity.FullName)
	}
	return doc, nil
}

func (s *approvalService) Reject(ctx context.Context, input *DecideInput) (*domain.Document, error) {
	if input.Comment == "" {
		return nil, domain.ErrRejectReasonMissing
	}

	doc, err := s.docRepo.GetByID(ctx, input.DocID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusInProgress {
		return nil, domain.ErrInvalidTransition
	}
	if !input.Force && !approval.IsCurrentApprover(doc, input.Identity) {
		return nil, domain.ErrNotCurrentApprover
	}

	now := time.Now().UTC()
	idx := doc.CurrentApproverIndex
	// Force skips the approver check, so the index is not yet validated.
	if idx < 0 || idx >= len(doc.ApprovalLine) {
		return nil, domain.ErrInvalidTransition
	}
	doc.ApprovalLine[idx].Decision = domain.DecisionRejected
	doc.ApprovalLine[idx].Comment = input.Comment
	doc.ApprovalLine[idx].DecidedAt = &now

	if !approval.CanTransition(doc.Status, domain.StatusRejected) {
		return nil, domain.ErrInvalidTransition
	}
	doc.Status = domain.StatusRejected

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("recording rejection: %w", err)
	}

	s.notifyDrafter(ctx, doc, input.Identity.FullName, input.Comment)
	return doc, nil
}

func (s *approvalService) Resubmit(ctx context.Context, input *ResubmitInput) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, input.DocID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusRejected {
		return nil, domain.ErrInvalidTransition
	}
	if !approval.CanResubmit(doc, input.Identity) {
		return nil, domain.ErrNotDrafter
	}

	if input.Title != "" {
		doc.Title = input.Title
	}
	merged := form.MergeContent(doc.DocContent, form.StripComputed(doc.DocType, input.DocContent))
	content, err := form.ApplyComputed(doc.DocType, merged)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(doc.DocType, content); err != nil {
		return nil, err
	}
	doc.DocContent = content

	if err := s.requireSettledAttachments(ctx, doc.ID, input.AttachmentIDs); err != nil {
		return nil, err
	}

	// Archive the rejected cycle; prior decisions are historical record only.
	rejectedBy := ""
	if idx := doc.CurrentApproverIndex; idx >= 0 && idx < len(doc.ApprovalLine) {
		rejectedBy = doc.ApprovalLine[idx].ApproverID
	}
	doc.LineHistory = append(doc.LineHistory, domain.LineCycle{
		Line:       doc.ApprovalLine,
		Status:     domain.StatusRejected,
		ClosedAt:   time.Now().UTC(),
		RejectedBy: rejectedBy,
	})

	var line domain.ApprovalLine
	if len(input.ApprovalLine) > 0 {
		line, err = s.buildLine(ctx, doc.DocType, input.Identity.DeptCode, input.ApprovalLine)
	} else {
		line = approval.ResetLine(doc.ApprovalLine)
		err = approval.ValidateLine(line)
	}
	if err != nil {
		return nil, err
	}

	if !approval.CanTransition(domain.StatusRejected, domain.StatusInProgress) {
		return nil, domain.ErrInvalidTransition
	}
	doc.Status = domain.StatusInProgress
	doc.ApprovalLine = line
	doc.CurrentApproverIndex = 0
	doc.Resubmitted = true

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("resubmitting document: %w", err)
	}
	if err := s.attRepo.BindToDocument(ctx, doc.ID, input.AttachmentIDs); err != nil {
		return nil, fmt.Errorf("binding attachments: %w", err)
	}

	s.notifyApprover(ctx, doc, line[0].ApproverID, input.Identity.FullName)
	return doc, nil
}

func (s *approvalService) Delete(ctx context.Context, docID uuid.UUID, id domain.Identity) error {
	if !IsAdmin(id) {
		return domain.ErrForbidden
	}

	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !approval.CanTransition(doc.Status, domain.StatusDeleted) {
		return domain.ErrInvalidTransition
	}

	doc.Status = domain.StatusDeleted
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// notifyApprover emails the approver whose turn has arrived. Notification
// failures are logged and never block routing.
func (s *approvalService) notifyApprover(ctx context.Context, doc *domain.Document, approverID, actorName string) {
	if s.sender == nil {
		return
	}
	user, err := s.userRepo.GetByUsername(ctx, approverID)
	if err != nil {
		log.Printf("approvalService.notifyApprover: lookup %q failed: %v", approverID, err)
		return
	}
	notice := port.ApprovalNotice{
		ToEmail:   user.Email,
		ToName:    user.FullName,
		DocID:     doc.ID.String(),
		DocTitle:  doc.Title,
		DocType:   string(doc.DocType),
		ActorName: actorName,
	}
	if err := s.sender.SendApprovalRequested(ctx, notice); err != nil {
		log.Printf("approvalService.notifyApprover: send to %s failed: %v", user.Email, err)
	}
}

// notifyDrafter emails the drafter about a terminal decision. An empty reason
// signals final approval.
func (s *approvalService) notifyDrafter(ctx context.Context, doc *domain.Document, actorName, reason string) {
	if s.sender == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, doc.CreatedBy)
	if err != nil {
		log.Printf("approvalService.notifyDrafter: lookup %s failed: %v", doc.CreatedBy, err)
		return
	}
	notice := port.ApprovalNotice{
		ToEmail:   user.Email,
		ToName:    user.FullName,
		DocID:     doc.ID.String(),
		DocTitle:  doc.Title,
		DocType:   string(doc.DocType),
		ActorName: actorName,
		Reason:    reason,
	}
	if reason == "" {
		err = s.sender.SendDocumentApproved(ctx, notice)
	} else {
		err = s.sender.SendDocumentRejected(ctx, notice)
	}
	if err != nil {
		log.Printf("approvalService.notifyDrafter: send to %s failed: %v", user.Email, err)
	}
}
