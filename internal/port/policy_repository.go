package port

import (
	"context"

	"bizmate/internal/domain"
)

// PolicyRepository defines access to the department/doc-type routing policy.
type PolicyRepository interface {
	// ListSteps returns the ordered policy steps for a document type and
	// drafter department. An empty result means manual entry is required.
	ListSteps(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ApprovalPolicyStep, error)
}
