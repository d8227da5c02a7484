package approval_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bizmate/internal/approval"
	"bizmate/internal/domain"
)

func lineOf(approverIDs ...string) domain.ApprovalLine {
	entries := make([]approval.LineEntry, 0, len(approverIDs))
	for _, id := range approverIDs {
		entries = append(entries, approval.LineEntry{ApproverID: id, ApproverName: id})
	}
	return approval.NormalizeLine(entries)
}

func TestIsCurrentApprover_MatchesCurrentStep(t *testing.T) {
	doc := &domain.Document{
		Status:               domain.StatusInProgress,
		ApprovalLine:         lineOf("kim.manager", "lee.director"),
		CurrentApproverIndex: 0,
	}

	assert.True(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "kim.manager"}))
	assert.False(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "lee.director"}))

	doc.CurrentApproverIndex = 1
	assert.False(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "kim.manager"}))
	assert.True(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "lee.director"}))
}

func TestIsCurrentApprover_CaseAndWhitespaceInsensitive(t *testing.T) {
	doc := &domain.Document{
		Status:               domain.StatusInProgress,
		ApprovalLine:         lineOf(" Kim.Manager "),
		CurrentApproverIndex: 0,
	}

	assert.True(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "kim.manager"}))
	assert.True(t, approval.IsCurrentApprover(doc, domain.Identity{Username: "  KIM.MANAGER"}))
}

func TestIsCurrentApprover_MatchesEmpNoAndFullName(t *testing.T) {
	doc := &domain.Document{
		Status: domain.StatusInProgress,
		ApprovalLine: domain.ApprovalLine{
			{Order: 1, ApproverID: "E1042", ApproverName: "Kim Cheolsu", Decision: domain.DecisionPending},
		},
		CurrentApproverIndex: 0,
	}

	id := domain.Identity{Username: "kim.cs", EmpNo: "E1042", FullName: "Kim Cheolsu"}
	assert.True(t, approval.IsCurrentApprover(doc, id))

	other := domain.Identity{Username: "park.yh", EmpNo: "E2001", FullName: "Park Younghee"}
	assert.False(t, approval.IsCurrentApprover(doc, other))
}

func TestIsCurrentApprover_FalseWhenNotInProgress(t *testing.T) {
	id := domain.Identity{Username: "kim.manager"}

	for _, status := range []domain.DocStatus{
		domain.StatusDraft, domain.StatusApproved, domain.StatusRejected, domain.StatusDeleted,
	} {
		doc := &domain.Document{
			Status:               status,
			ApprovalLine:         lineOf("kim.manager"),
			CurrentApproverIndex: 0,
		}
		assert.False(t, approval.IsCurrentApprover(doc, id), "status %s", status)
	}
}

func TestIsCurrentApprover_FalseOnInvalidIndexOrEmptyLine(t *testing.T) {
	id := domain.Identity{Username: "kim.manager"}

	doc := &domain.Document{Status: domain.StatusInProgress}
	assert.False(t, approval.IsCurrentApprover(doc, id))

	doc.ApprovalLine = lineOf("kim.manager")
	doc.CurrentApproverIndex = 5
	assert.False(t, approval.IsCurrentApprover(doc, id))

	doc.CurrentApproverIndex = -1
	assert.False(t, approval.IsCurrentApprover(doc, id))
}

func TestIsCurrentApprover_EmptyIdentityNeverMatches(t *testing.T) {
	doc := &domain.Document{
		Status: domain.StatusInProgress,
		ApprovalLine: domain.ApprovalLine{
			{Order: 1, ApproverID: "", ApproverName: "", Decision: domain.DecisionPending},
		},
		CurrentApproverIndex: 0,
	}
	assert.False(t, approval.IsCurrentApprover(doc, domain.Identity{}))
}

func TestCanResubmit_DrafterOnly(t *testing.T) {
	drafterID := uuid.New()
	doc := &domain.Document{
		Status:          domain.StatusRejected,
		CreatedBy:       drafterID,
		CreatorUsername: "hong.gildong",
	}

	assert.True(t, approval.CanResubmit(doc, domain.Identity{UserID: drafterID}))
	assert.True(t, approval.CanResubmit(doc, domain.Identity{UserID: uuid.New(), Username: "Hong.Gildong"}))
	assert.False(t, approval.CanResubmit(doc, domain.Identity{UserID: uuid.New(), Username: "someone.else"}))
}

func TestCanResubmit_OnlyRejectedOrDraft(t *testing.T) {
	drafterID := uuid.New()
	id := domain.Identity{UserID: drafterID}

	for status, want := range map[domain.DocStatus]bool{
		domain.StatusDraft:      true,
		domain.StatusRejected:   true,
		domain.StatusInProgress: false,
		domain.StatusApproved:   false,
		domain.StatusDeleted:    false,
	} {
		doc := &domain.Document{Status: status, CreatedBy: drafterID}
		assert.Equal(t, want, approval.CanResubmit(doc, id), "status %s", status)
	}
}
