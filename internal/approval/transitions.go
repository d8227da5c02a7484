package approval

import (
	"bizmate/internal/domain"
)

// transitions enumerates the legal status transitions. APPROVED and DELETED
// are terminal; REJECTED is actionable only by the drafter via resubmission.
var transitions = map[domain.DocStatus]map[domain.DocStatus]bool{
	domain.StatusDraft: {
		domain.StatusInProgress: true,
		domain.StatusDeleted:    true,
	},
	domain.StatusInProgress: {
		domain.StatusInProgress: true, // intermediate approval advances the index
		domain.StatusApproved:   true,
		domain.StatusRejected:   true,
		domain.StatusDeleted:    true,
	},
	domain.StatusRejected: {
		domain.StatusInProgress: true, // resubmission opens a new routing cycle
		domain.StatusDeleted:    true,
	},
}

// CanTransition reports whether a document may move from one status to
// another. All transitions are executed server-side; callers only request
// them.
func CanTransition(from, to domain.DocStatus) bool {
	return transitions[from][to]
}
