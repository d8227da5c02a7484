package form_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bizmate/internal/domain"
	"bizmate/internal/form"
)

func TestMergeContent_NeverDropsKeys(t *testing.T) {
	prior := domain.DocContent{"reason": "family event", "leaveType": "annual"}
	patch := domain.DocContent{"startDate": "2026-03-02"}

	merged := form.MergeContent(prior, patch)

	assert.Equal(t, "family event", merged["reason"])
	assert.Equal(t, "annual", merged["leaveType"])
	assert.Equal(t, "2026-03-02", merged["startDate"])
}

func TestMergeContent_PatchWins(t *testing.T) {
	prior := domain.DocContent{"reason": "old"}
	merged := form.MergeContent(prior, domain.DocContent{"reason": "new"})

	assert.Equal(t, "new", merged["reason"])
	// inputs untouched
	assert.Equal(t, "old", prior["reason"])
}

func TestInitDrafterFields_Idempotent(t *testing.T) {
	id := domain.Identity{FullName: "Hong Gildong", DeptName: "Engineering"}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	content := form.InitDrafterFields(domain.DocContent{"reason": "x"}, id, now)
	assert.Equal(t, "Hong Gildong", content["drafterName"])
	assert.Equal(t, "Engineering", content["drafterDept"])
	assert.Equal(t, "2026-03-02", content["draftDate"])
	assert.Equal(t, "x", content["reason"])

	// a later bind with a different clock must not touch the fields
	again := form.InitDrafterFields(content, id, now.Add(48*time.Hour))
	assert.Equal(t, "2026-03-02", again["draftDate"])
}

func TestInitDrafterFields_NilContent(t *testing.T) {
	id := domain.Identity{FullName: "Hong Gildong", DeptName: "Engineering"}
	content := form.InitDrafterFields(nil, id, time.Now())

	assert.Equal(t, "Hong Gildong", content["drafterName"])
}

func TestStripComputed_RemovesOnlyComputedKeys(t *testing.T) {
	patch := domain.DocContent{
		"purpose":     "office equipment",
		"subtotal":    1.0,
		"tax":         2.0,
		"totalAmount": 3.0,
	}

	out := form.StripComputed(domain.DocTypePurchase, patch)

	assert.Equal(t, "office equipment", out["purpose"])
	assert.NotContains(t, out, "subtotal")
	assert.NotContains(t, out, "tax")
	assert.NotContains(t, out, "totalAmount")
	// input untouched
	assert.Contains(t, patch, "subtotal")
}
