package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an employee account.
type User struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EmpNo        string          `db:"emp_no" json:"emp_no"`
	Username     string          `db:"username" json:"username"`
	PasswordHash string          `db:"password_hash" json:"-"`
	FullName     string          `db:"full_name" json:"full_name"`
	Email        string          `db:"email" json:"email"`
	DeptCode     string          `db:"dept_code" json:"dept_code"`
	DeptName     string          `db:"dept_name" json:"dept_name"`
	Position     string          `db:"position" json:"position"`
	Role         UserRole        `db:"role" json:"role"`
	Permissions  json.RawMessage `db:"permissions" json:"permissions"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Identity is the acting user's claim set as seen by the approval logic.
type Identity struct {
	UserID      uuid.UUID `json:"userId"`
	EmpNo       string    `json:"empId"`
	Username    string    `json:"username"`
	FullName    string    `json:"name"`
	Email       string    `json:"email"`
	DeptCode    string    `json:"deptCode"`
	DeptName    string    `json:"deptName"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}

// SplitClaims partitions raw claim strings into roles (ROLE_-prefixed) and
// fine-grained permissions (everything else).
func SplitClaims(raw []string) (roles, permissions []string) {
	for _, c := range raw {
		if strings.HasPrefix(c, RolePrefix) {
			roles = append(roles, c)
		} else {
			permissions = append(permissions, c)
		}
	}
	return roles, permissions
}

// ApprovalStep is one slot in a document's routing sequence.
type ApprovalStep struct {
	Order        int        `json:"order"`
	ApproverID   string     `json:"approverId"`
	ApproverName string     `json:"approverName"`
	Decision     Decision   `json:"decision"`
	Comment      string     `json:"comment"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
}

// ApprovalLine is the ordered sequence of required approvers. Stored as JSONB.
type ApprovalLine []ApprovalStep

// Value implements driver.Valuer for JSONB storage.
func (l ApprovalLine) Value() (driver.Value, error) {
	if l == nil {
		l = ApprovalLine{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *ApprovalLine) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// LineCycle is an archived routing cycle of a resubmitted document.
type LineCycle struct {
	Line       ApprovalLine `json:"line"`
	Status     DocStatus    `json:"status"`
	ClosedAt   time.Time    `json:"closedAt"`
	RejectedBy string       `json:"rejectedBy,omitempty"`
}

// LineHistory is the list of prior routing cycles. Stored as JSONB.
type LineHistory []LineCycle

func (h LineHistory) Value() (driver.Value, error) {
	if h == nil {
		h = LineHistory{}
	}
	return json.Marshal(h)
}

func (h *LineHistory) Scan(src interface{}) error {
	return scanJSON(src, h)
}

// DocContent is the type-specific field mapping of a document. Stored as JSONB.
type DocContent map[string]interface{}

func (c DocContent) Value() (driver.Value, error) {
	if c == nil {
		c = DocContent{}
	}
	return json.Marshal(c)
}

func (c *DocContent) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}

// Document is a routable unit of work.
type Document struct {
	ID                   uuid.UUID    `db:"id" json:"id"`
	Title                string       `db:"title" json:"title"`
	DocType              DocType      `db:"doc_type" json:"docType"`
	Status               DocStatus    `db:"status" json:"status"`
	DocContent           DocContent   `db:"doc_content" json:"docContent"`
	ApprovalLine         ApprovalLine `db:"approval_line" json:"approvalLine"`
	CurrentApproverIndex int          `db:"current_approver_index" json:"currentApproverIndex"`
	Resubmitted          bool         `db:"resubmitted" json:"resubmitted"`
	LineHistory          LineHistory  `db:"line_history" json:"lineHistory"`
	CreatedBy            uuid.UUID    `db:"created_by" json:"createdBy"`
	CreatorUsername      string       `db:"creator_username" json:"creatorUsername"`
	CreatorEmpNo         string       `db:"creator_emp_no" json:"creatorEmpNo"`
	CreatorName          string       `db:"creator_name" json:"creatorName"`
	CreatorDeptName      string       `db:"creator_dept_name" json:"creatorDeptName"`
	CreatedAt            time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updatedAt"`
	CompletedAt          *time.Time   `db:"completed_at" json:"completedAt,omitempty"`
}

// DisplayStatus returns the status shown to users. A document routing again
// after a rejection displays as RESUBMITTED while persisted as IN_PROGRESS.
func (d *Document) DisplayStatus() string {
	if d.Status == StatusInProgress && d.Resubmitted {
		return DisplayStatusResubmitted
	}
	return string(d.Status)
}

// Attachment is a file bound to a document. DocumentID is nullable: uploads
// may precede the owning document and are back-filled on submission.
type Attachment struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	DocumentID   *uuid.UUID       `db:"document_id" json:"documentId"`
	UploadedBy   uuid.UUID        `db:"uploaded_by" json:"uploadedBy"`
	OriginalName string           `db:"original_name" json:"originalName"`
	StoredName   string           `db:"stored_name" json:"storedName"`
	S3Bucket     string           `db:"s3_bucket" json:"-"`
	S3Key        string           `db:"s3_key" json:"s3Key"`
	FileSize     int64            `db:"file_size" json:"fileSize"`
	ContentType  string           `db:"content_type" json:"contentType"`
	Status       AttachmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
}

// ApprovalPolicyStep is one row of the department/doc-type routing policy.
type ApprovalPolicyStep struct {
	ID               uuid.UUID `db:"id" json:"id"`
	DocType          DocType   `db:"doc_type" json:"docType"`
	DeptCode         string    `db:"dept_code" json:"deptCode"`
	StepOrder        int       `db:"step_order" json:"stepOrder"`
	ApproverDeptName string    `db:"approver_dept_name" json:"approverDeptName"`
	ApproverPosition string    `db:"approver_position" json:"approverPosition"`
	ApproverUsername string    `db:"approver_username" json:"approverUsername"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// ResolvedStep is one entry of a policy-derived approval line.
type ResolvedStep struct {
	Order        int    `json:"order"`
	DeptName     string `json:"deptName"`
	Position     string `json:"position"`
	ApproverID   string `json:"approverId"`
	ApproverName string `json:"approverName"`
}

// Board is an internal bulletin board post.
type Board struct {
	No        int64     `db:"no" json:"no"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Writer    string    `db:"writer" json:"writer"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// BoardComment is a comment on a bulletin board post.
type BoardComment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BoardNo   int64     `db:"board_no" json:"boardNo"`
	Writer    string    `db:"writer" json:"writer"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
