package approval

import (
	"bizmate/internal/domain"
)

// LineEntry is a raw approver entry before normalization, as received from a
// manual-mode drafter or produced by the routing policy.
type LineEntry struct {
	ApproverID   string `json:"approverId"`
	ApproverName string `json:"approverName"`
}

// NormalizeLine turns raw entries into a canonical approval line: orders
// assigned by position starting at 1 with no gaps, every decision PENDING,
// every comment empty. Both resolution modes funnel through here so a
// submitted line has a single shape regardless of origin.
func NormalizeLine(entries []LineEntry) domain.ApprovalLine {
	line := make(domain.ApprovalLine, 0, len(entries))
	for i, e := range entries {
		line = append(line, domain.ApprovalStep{
			Order:        i + 1,
			ApproverID:   e.ApproverID,
			ApproverName: e.ApproverName,
			Decision:     domain.DecisionPending,
			Comment:      "",
		})
	}
	return line
}

// FromResolved converts policy-resolved steps into raw line entries,
// preserving the server-returned order.
func FromResolved(steps []domain.ResolvedStep) []LineEntry {
	entries := make([]LineEntry, 0, len(steps))
	for _, s := range steps {
		entries = append(entries, LineEntry{ApproverID: s.ApproverID, ApproverName: s.ApproverName})
	}
	return entries
}

// ValidateLine checks the invariants of a canonical approval line: at least
// one step, a non-empty approver on every step, and order fields strictly
// increasing from 1.
func ValidateLine(line domain.ApprovalLine) error {
	if len(line) == 0 {
		return domain.ErrEmptyApprovalLine
	}
	prev := 0
	for _, step := range line {
		if step.ApproverID == "" {
			return domain.ErrApproverUnknown
		}
		if step.Order <= prev {
			return domain.ErrLineOrderInvalid
		}
		prev = step.Order
	}
	return nil
}

// ResetLine returns a fresh PENDING copy of a line for a new routing cycle.
// Prior decisions are historical record, never gating state.
func ResetLine(line domain.ApprovalLine) domain.ApprovalLine {
	entries := make([]LineEntry, 0, len(line))
	for _, s := range line {
		entries = append(entries, LineEntry{ApproverID: s.ApproverID, ApproverName: s.ApproverName})
	}
	return NormalizeLine(entries)
}
