// Package form implements the per-document-type form model: a registry of
// schema descriptors keyed by DocType, schema-local required-field
// validation, reactive computed fields, and merge-on-change content updates.
package form

import (
	"fmt"
	"strings"

	"bizmate/internal/domain"
)

// Schema describes the input form of one document type.
type Schema struct {
	DocType  domain.DocType
	Required []string
	// Computed lists the field names owned by the compute rule. They are
	// recomputed from their inputs on every change and are never accepted
	// from the caller.
	Computed []string
	Compute  func(domain.DocContent) domain.DocContent
}

// registry maps each document type to its schema descriptor.
var registry = map[domain.DocType]*Schema{
	domain.DocTypeLeave: {
		DocType:  domain.DocTypeLeave,
		Required: []string{"leaveType", "startDate", "endDate", "reason"},
		Computed: []string{"leaveDays", "remainingLeave"},
		Compute:  computeLeave,
	},
	domain.DocTypePurchase: {
		DocType:  domain.DocTypePurchase,
		Required: []string{"purpose", "items"},
		Computed: []string{"subtotal", "tax", "totalAmount"},
		Compute:  computeLineItems("items", "subtotal", "tax", "totalAmount"),
	},
	domain.DocTypeExpense: {
		DocType:  domain.DocTypeExpense,
		Required: []string{"expenseDate", "items"},
		Computed: []string{"totalAmount"},
		Compute:  computeRowTotal("items", "amount", "totalAmount"),
	},
	domain.DocTypeProjectPlan: {
		DocType:  domain.DocTypeProjectPlan,
		Required: []string{"projectName", "startDate", "endDate", "objective"},
		Computed: []string{"budgetTotal"},
		Compute:  computeRowTotal("budgetItems", "amount", "budgetTotal"),
	},
	domain.DocTypeResignation: {
		DocType:  domain.DocTypeResignation,
		Required: []string{"resignationDate", "reason"},
	},
	domain.DocTypeHRTransfer: {
		DocType:  domain.DocTypeHRTransfer,
		Required: []string{"targetDept", "effectiveDate", "reason"},
	},
	domain.DocTypeGeneralRequest: {
		DocType:  domain.DocTypeGeneralRequest,
		Required: []string{"category", "requestDetail"},
	},
	domain.DocTypeEstimate: {
		DocType:  domain.DocTypeEstimate,
		Required: []string{"clientName", "validUntil", "items"},
		Computed: []string{"subtotal", "tax", "grandTotal"},
		Compute:  computeLineItems("items", "subtotal", "tax", "grandTotal"),
	},
}

// Get returns the schema for a document type.
func Get(docType domain.DocType) (*Schema, error) {
	s, ok := registry[docType]
	if !ok {
		return nil, domain.ErrUnknownDocType
	}
	return s, nil
}

// FieldError is a schema-local validation failure on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Validate checks the schema's required fields against the content. Missing
// or blank fields block submission before any persistence.
func Validate(docType domain.DocType, content domain.DocContent) error {
	schema, err := Get(docType)
	if err != nil {
		return err
	}

	var fields []FieldError
	for _, name := range schema.Required {
		if isBlank(content[name]) {
			fields = append(fields, FieldError{Field: name, Message: fmt.Sprintf("%s is required", name)})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}
