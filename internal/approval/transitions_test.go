package approval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizmate/internal/approval"
	"bizmate/internal/domain"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to domain.DocStatus
		want     bool
	}{
		{domain.StatusDraft, domain.StatusInProgress, true},
		{domain.StatusDraft, domain.StatusDeleted, true},
		{domain.StatusDraft, domain.StatusApproved, false},
		{domain.StatusInProgress, domain.StatusApproved, true},
		{domain.StatusInProgress, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusInProgress, true},
		{domain.StatusInProgress, domain.StatusDraft, false},
		{domain.StatusRejected, domain.StatusInProgress, true},
		{domain.StatusRejected, domain.StatusApproved, false},
		{domain.StatusApproved, domain.StatusInProgress, false},
		{domain.StatusApproved, domain.StatusRejected, false},
		{domain.StatusDeleted, domain.StatusInProgress, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, approval.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
