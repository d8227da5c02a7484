package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bizmate/internal/domain"
	"bizmate/internal/handler"
	"bizmate/internal/middleware"
	"bizmate/internal/service"
	"bizmate/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testIdentity() domain.Identity {
	return domain.Identity{
		UserID:   uuid.New(),
		EmpNo:    "E1042",
		Username: "hong.gildong",
		FullName: "Hong Gildong",
		DeptCode: "ENG",
		Roles:    []string{"ROLE_EMPLOYEE"},
	}
}

func authedContext(t *testing.T, method, path string, body interface{}, id domain.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextKeyIdentity, id)
	return c, w
}

func TestApprovalHandler_Approve_Success(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	id := testIdentity()
	docID := uuid.New()

	doc := &domain.Document{ID: docID, Status: domain.StatusApproved}
	svc.On("Approve", mock.Anything, mock.MatchedBy(func(in *service.DecideInput) bool {
		return in.DocID == docID && in.Comment == "ok" && !in.Force
	})).Return(doc, nil)

	c, w := authedContext(t, http.MethodPost, "/api/v1/approvals/"+docID.String()+"/approve",
		map[string]string{"comment": "ok"}, id)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestApprovalHandler_Approve_NotCurrentApproverIs403(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	docID := uuid.New()

	svc.On("Approve", mock.Anything, mock.AnythingOfType("*service.DecideInput")).
		Return(nil, domain.ErrNotCurrentApprover)

	c, w := authedContext(t, http.MethodPost, "/api/v1/approvals/"+docID.String()+"/approve",
		map[string]string{}, testIdentity())
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}

	h.Approve(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_CURRENT_APPROVER", resp.Error.Code)
}

func TestApprovalHandler_Reject_MissingReasonIs400(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	docID := uuid.New()

	svc.On("Reject", mock.Anything, mock.AnythingOfType("*service.DecideInput")).
		Return(nil, domain.ErrRejectReasonMissing)

	c, w := authedContext(t, http.MethodPost, "/api/v1/approvals/"+docID.String()+"/reject",
		map[string]string{}, testIdentity())
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "REJECT_REASON_REQUIRED", resp.Error.Code)
}

func TestApprovalHandler_Submit_RequiresTitleAndType(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)

	c, w := authedContext(t, http.MethodPost, "/api/v1/approvals",
		map[string]interface{}{"docContent": map[string]interface{}{}}, testIdentity())

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestApprovalHandler_List_PageEnvelope(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	id := testIdentity()

	views := []service.DocumentView{
		{Document: &domain.Document{ID: uuid.New(), Title: "Leave"}, DisplayStatus: "IN_PROGRESS"},
	}
	svc.On("List", mock.Anything, id, mock.MatchedBy(func(q service.ListQuery) bool {
		return q.Offset == 10 && q.Limit == 10 && q.Status == "IN_PROGRESS"
	})).Return(views, 23, nil)

	c, w := authedContext(t, http.MethodGet, "/api/v1/approvals?page=2&size=10&status=IN_PROGRESS", nil, id)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 23, resp.TotalCount)
	assert.Equal(t, 2, resp.PageRequestDTO.Page)
	assert.Equal(t, 10, resp.PageRequestDTO.Size)
}

func TestApprovalHandler_Get_InvalidID(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)

	c, w := authedContext(t, http.MethodGet, "/api/v1/approvals/not-a-uuid", nil, testIdentity())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalHandler_ResolveLine_DefaultsToCallerDept(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	id := testIdentity()

	svc.On("ResolveLine", mock.Anything, domain.DocTypeLeave, "ENG").
		Return([]domain.ResolvedStep{{Order: 1, ApproverID: "kim.manager"}}, nil)

	c, w := authedContext(t, http.MethodGet, "/api/v1/approvals/line?docType=LEAVE", nil, id)

	h.ResolveLine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestApprovalHandler_Unauthenticated(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/approvals", nil)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApprovalHandler_Export_PagesThroughFullResultSet(t *testing.T) {
	svc := new(mocks.MockApprovalService)
	h := handler.NewApprovalHandler(svc)
	id := testIdentity()

	page := func(n int) []service.DocumentView {
		views := make([]service.DocumentView, n)
		for i := range views {
			views[i] = service.DocumentView{
				Document:      &domain.Document{ID: uuid.New(), Title: fmt.Sprintf("Doc %d", i)},
				DisplayStatus: "APPROVED",
			}
		}
		return views
	}

	svc.On("List", mock.Anything, id, mock.MatchedBy(func(q service.ListQuery) bool {
		return q.Offset == 0
	})).Return(page(100), 120, nil).Once()
	svc.On("List", mock.Anything, id, mock.MatchedBy(func(q service.ListQuery) bool {
		return q.Offset == 100
	})).Return(page(20), 120, nil).Once()

	c, w := authedContext(t, http.MethodGet, "/api/v1/approvals/export", nil, id)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Documents")
	require.NoError(t, err)
	assert.Len(t, rows, 121)
}
