// Package approval holds the pure routing logic of the electronic-approval
// workflow: the decision gate, approval-line shaping, and the document status
// state machine. Nothing in this package performs I/O; the HTTP and service
// layers call into it for both advisory flags and authoritative checks.
package approval

import (
	"strings"

	"bizmate/internal/domain"
)

// matches reports whether two identity strings are equal after trimming
// whitespace and folding case. Empty strings never match.
func matches(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// identityMatchesStep reports whether the acting identity occupies the given
// approval step. Manual-mode lines may carry an employee number or a username
// in approverId, so the username, employee number, and display name are all
// compared against both step fields.
func identityMatchesStep(id domain.Identity, step domain.ApprovalStep) bool {
	for _, mine := range []string{id.Username, id.EmpNo, id.FullName} {
		if matches(mine, step.ApproverID) || matches(mine, step.ApproverName) {
			return true
		}
	}
	return false
}

// IsCurrentApprover reports whether the identity is expected to act at the
// document's current routing position. It is false whenever the document is
// not IN_PROGRESS or currentApproverIndex does not point into a non-empty
// approval line.
func IsCurrentApprover(doc *domain.Document, id domain.Identity) bool {
	if doc == nil || doc.Status != domain.StatusInProgress {
		return false
	}
	if len(doc.ApprovalLine) == 0 {
		return false
	}
	idx := doc.CurrentApproverIndex
	if idx < 0 || idx >= len(doc.ApprovalLine) {
		return false
	}
	return identityMatchesStep(id, doc.ApprovalLine[idx])
}

// CanResubmit reports whether the identity may re-open the document for
// editing: only the original drafter, and only while the document is
// REJECTED or still a DRAFT.
func CanResubmit(doc *domain.Document, id domain.Identity) bool {
	if doc == nil {
		return false
	}
	if doc.Status != domain.StatusRejected && doc.Status != domain.StatusDraft {
		return false
	}
	if id.UserID == doc.CreatedBy {
		return true
	}
	return matches(id.Username, doc.CreatorUsername)
}
