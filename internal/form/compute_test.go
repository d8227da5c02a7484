package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmate/internal/domain"
	"bizmate/internal/form"
)

func TestApplyComputed_LeaveDays(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeLeave, domain.DocContent{
		"leaveType":    "annual",
		"startDate":    "2026-03-02",
		"endDate":      "2026-03-04",
		"leaveBalance": 15.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, content["leaveDays"])
	assert.Equal(t, 12.0, content["remainingLeave"])
}

func TestApplyComputed_LeaveSingleDay(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeLeave, domain.DocContent{
		"startDate":    "2026-03-02",
		"endDate":      "2026-03-02",
		"leaveBalance": 15.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, content["leaveDays"])
	assert.Equal(t, 14.0, content["remainingLeave"])
}

func TestApplyComputed_LeaveInvalidRangeClearsDerived(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeLeave, domain.DocContent{
		"startDate": "2026-03-04",
		"endDate":   "2026-03-02",
		// stale values from a previous computation
		"leaveDays":      3.0,
		"remainingLeave": 12.0,
	})
	require.NoError(t, err)

	assert.NotContains(t, content, "leaveDays")
	assert.NotContains(t, content, "remainingLeave")
}

func TestApplyComputed_PurchaseTotals(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypePurchase, domain.DocContent{
		"purpose": "office equipment",
		"items": []interface{}{
			map[string]interface{}{"name": "keyboard", "quantity": 2.0, "unitPrice": 5000.0},
			map[string]interface{}{"name": "monitor", "quantity": 1.0, "unitPrice": 15000.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 25000.0, content["subtotal"])
	assert.Equal(t, 2500.0, content["tax"])
	assert.Equal(t, 27500.0, content["totalAmount"])
}

func TestApplyComputed_EstimateTotals(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeEstimate, domain.DocContent{
		"items": []interface{}{
			map[string]interface{}{"name": "consulting", "quantity": 10.0, "unitPrice": 100000.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1000000.0, content["subtotal"])
	assert.Equal(t, 100000.0, content["tax"])
	assert.Equal(t, 1100000.0, content["grandTotal"])
}

func TestApplyComputed_ExpenseRowTotal(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeExpense, domain.DocContent{
		"items": []interface{}{
			map[string]interface{}{"description": "taxi", "amount": 12000.0},
			map[string]interface{}{"description": "meal", "amount": 9000.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 21000.0, content["totalAmount"])
}

func TestApplyComputed_OverwritesCallerValues(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypePurchase, domain.DocContent{
		"items": []interface{}{
			map[string]interface{}{"quantity": 1.0, "unitPrice": 1000.0},
		},
		"totalAmount": 999999.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 1100.0, content["totalAmount"])
}

func TestApplyComputed_NoComputeRule(t *testing.T) {
	content, err := form.ApplyComputed(domain.DocTypeResignation, domain.DocContent{
		"resignationDate": "2026-09-30",
		"reason":          "personal",
	})
	require.NoError(t, err)
	assert.Equal(t, "personal", content["reason"])
}

func TestApplyComputed_UnknownDocType(t *testing.T) {
	_, err := form.ApplyComputed(domain.DocType("BOGUS"), domain.DocContent{})
	assert.ErrorIs(t, err, domain.ErrUnknownDocType)
}
