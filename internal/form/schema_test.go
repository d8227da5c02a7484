package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmate/internal/domain"
	"bizmate/internal/form"
)

func TestValidate_AllDocTypesRegistered(t *testing.T) {
	for docType := range domain.ValidDocTypes {
		schema, err := form.Get(docType)
		require.NoError(t, err, "docType %s", docType)
		assert.NotEmpty(t, schema.Required, "docType %s", docType)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	err := form.Validate(domain.DocTypeLeave, domain.DocContent{
		"leaveType": "annual",
		"startDate": "2026-03-02",
	})

	var vErr *form.ValidationError
	require.ErrorAs(t, err, &vErr)

	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"endDate", "reason"}, fields)
}

func TestValidate_BlankStringIsMissing(t *testing.T) {
	err := form.Validate(domain.DocTypeResignation, domain.DocContent{
		"resignationDate": "2026-09-30",
		"reason":          "   ",
	})

	var vErr *form.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 1)
	assert.Equal(t, "reason", vErr.Fields[0].Field)
}

func TestValidate_EmptyItemsIsMissing(t *testing.T) {
	err := form.Validate(domain.DocTypePurchase, domain.DocContent{
		"purpose": "office equipment",
		"items":   []interface{}{},
	})

	var vErr *form.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items", vErr.Fields[0].Field)
}

func TestValidate_Passes(t *testing.T) {
	err := form.Validate(domain.DocTypeGeneralRequest, domain.DocContent{
		"category":      "equipment",
		"requestDetail": "replacement laptop",
	})
	assert.NoError(t, err)
}
