package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizmate/internal/domain"
	"bizmate/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, title, doc_type, status, doc_content,
		approval_line, current_approver_index, resubmitted, line_history,
		created_by, creator_username, creator_emp_no, creator_name, creator_dept_name,
		created_at, updated_at, completed_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14,
		$15, $16, $17
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Title, doc.DocType, doc.Status, doc.DocContent,
		doc.ApprovalLine, doc.CurrentApproverIndex, doc.Resubmitted, doc.LineHistory,
		doc.CreatedBy, doc.CreatorUsername, doc.CreatorEmpNo, doc.CreatorName, doc.CreatorDeptName,
		doc.CreatedAt, doc.UpdatedAt, doc.CompletedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, filter port.DocumentListFilter) ([]domain.Document, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		where = append(where, "status = "+arg(*filter.Status))
	} else {
		// DELETED documents are administrative and excluded from ordinary views.
		where = append(where, "status <> "+arg(domain.StatusDeleted))
	}
	if filter.Keyword != "" {
		where = append(where, "title ILIKE "+arg("%"+filter.Keyword+"%"))
	}
	if filter.CreatedBy != nil {
		where = append(where, "created_by = "+arg(*filter.CreatedBy))
	}
	if filter.AwaitingUser != "" {
		where = append(where,
			"status = "+arg(domain.StatusInProgress)+
				" AND lower(trim(approval_line -> current_approver_index ->> 'approverId')) = lower(trim("+arg(filter.AwaitingUser)+"))")
	}

	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE "+cond, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM documents WHERE %s ORDER BY created_at DESC LIMIT %s OFFSET %s",
		cond, arg(filter.Limit), arg(filter.Offset))

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			title = $1, status = $2, doc_content = $3,
			approval_line = $4, current_approver_index = $5,
			resubmitted = $6, line_history = $7,
			updated_at = $8, completed_at = $9
		 WHERE id = $10`,
		doc.Title, doc.Status, doc.DocContent,
		doc.ApprovalLine, doc.CurrentApproverIndex,
		doc.Resubmitted, doc.LineHistory,
		doc.UpdatedAt, doc.CompletedAt,
		doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
