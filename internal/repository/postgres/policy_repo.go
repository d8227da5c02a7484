package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

type policyRepo struct {
	db *sqlx.DB
}

// NewPolicyRepo creates a new PostgreSQL-backed PolicyRepository.
func NewPolicyRepo(db *sqlx.DB) port.PolicyRepository {
	return &policyRepo{db: db}
}

func (r *policyRepo) ListSteps(ctx context.Context, docType domain.DocType, deptCode string) ([]domain.ApprovalPolicyStep, error) {
	var steps []domain.ApprovalPolicyStep
	err := r.db.SelectContext(ctx, &steps,
		`SELECT * FROM approval_policies
		 WHERE doc_type = $1 AND dept_code = $2
		 ORDER BY step_order`, docType, deptCode)
	if err != nil {
		return nil, fmt.Errorf("policyRepo.ListSteps: %w", err)
	}
	return steps, nil
}
