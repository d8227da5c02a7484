package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmate/internal/domain"
)

func TestApprovalLine_JSONBRoundTrip(t *testing.T) {
	decided := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	line := domain.ApprovalLine{
		{Order: 1, ApproverID: "kim.manager", ApproverName: "Kim Manager", Decision: domain.DecisionApproved, Comment: "ok", DecidedAt: &decided},
		{Order: 2, ApproverID: "lee.director", ApproverName: "Lee Director", Decision: domain.DecisionPending},
	}

	raw, err := line.Value()
	require.NoError(t, err)

	var out domain.ApprovalLine
	require.NoError(t, out.Scan(raw))

	require.Len(t, out, 2)
	assert.Equal(t, line[0].ApproverID, out[0].ApproverID)
	assert.Equal(t, domain.DecisionApproved, out[0].Decision)
	require.NotNil(t, out[0].DecidedAt)
	assert.True(t, decided.Equal(*out[0].DecidedAt))
	assert.Nil(t, out[1].DecidedAt)
}

func TestDocContent_NilValueIsEmptyObject(t *testing.T) {
	var content domain.DocContent
	raw, err := content.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(raw.([]byte)))
}

func TestLineHistory_ScanString(t *testing.T) {
	var h domain.LineHistory
	src := `[{"line":[{"order":1,"approverId":"kim","approverName":"Kim","decision":"REJECTED","comment":"no"}],"status":"REJECTED","closedAt":"2026-03-02T10:30:00Z","rejectedBy":"kim"}]`
	require.NoError(t, h.Scan(src))

	require.Len(t, h, 1)
	assert.Equal(t, domain.StatusRejected, h[0].Status)
	assert.Equal(t, "kim", h[0].RejectedBy)
	assert.Equal(t, domain.DecisionRejected, h[0].Line[0].Decision)
}

func TestDocument_DisplayStatus(t *testing.T) {
	doc := &domain.Document{Status: domain.StatusInProgress}
	assert.Equal(t, "IN_PROGRESS", doc.DisplayStatus())

	doc.Resubmitted = true
	assert.Equal(t, "RESUBMITTED", doc.DisplayStatus())

	doc.Status = domain.StatusApproved
	assert.Equal(t, "APPROVED", doc.DisplayStatus())

	doc.Status = domain.StatusRejected
	assert.Equal(t, "REJECTED", doc.DisplayStatus())
}

func TestSplitClaims(t *testing.T) {
	roles, perms := domain.SplitClaims([]string{"ROLE_ADMIN", "doc:write", "ROLE_EMPLOYEE", "doc:read"})
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_EMPLOYEE"}, roles)
	assert.Equal(t, []string{"doc:write", "doc:read"}, perms)
}
