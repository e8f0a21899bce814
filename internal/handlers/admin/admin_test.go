package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
	"github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

const adminID = 1

type mocks struct {
	reports *MockReportService
	ledger  *MockLedgerService
}

func NewMock(t *testing.T) (*AdminHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		reports: NewMockReportService(ctrl),
		ledger:  NewMockLedgerService(ctrl),
	}
	media := NewMockMedia(ctrl)
	media.EXPECT().URL(gomock.Any()).DoAndReturn(func(p string) string { return "/media/" + p }).AnyTimes()
	handler := New(m.reports, m.ledger, media)
	defer ctrl.Finish()
	return handler, m
}

func adminCtx(id string) context.Context {
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: adminID, IsAdmin: true})
	if id == "" {
		return ctx
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func TestQueueHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name           string
		query          string
		prepareMock    func()
		expectedCode   int
		expectedStatus string
	}{
		{
			name:  "Rejected queue",
			query: "?status=rejected",
			prepareMock: func() {
				m.reports.EXPECT().ListByStatus(gomock.Any(), "rejected").
					Return(domain.ReportRejected, []domain.SpeciesReport{{ID: 4, Status: domain.ReportRejected}}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "rejected",
		},
		{
			name:  "Unknown status falls back to pending",
			query: "?status=archived",
			prepareMock: func() {
				m.reports.EXPECT().ListByStatus(gomock.Any(), "archived").Return(domain.ReportPending, nil, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "pending",
		},
		{
			name:  "Storage failure",
			query: "",
			prepareMock: func() {
				m.reports.EXPECT().ListByStatus(gomock.Any(), "").Return(domain.ReportPending, nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/admin/reports"+tt.query, nil).WithContext(adminCtx(""))
			rr := httptest.NewRecorder()

			handler.Queue(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.QueueResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedStatus, resp.Status)
			}
		})
	}
}

func TestReviewHandler(t *testing.T) {
	handler, m := NewMock(t)
	reviewer := adminID

	tests := []struct {
		name          string
		id            string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Approve pending report",
			id:   "5",
			body: `{"action":"approve","note":"nice"}`,
			prepareMock: func() {
				m.reports.EXPECT().Review(gomock.Any(), adminID, 5, "approve", "nice").
					Return(&domain.SpeciesReport{ID: 5, Status: domain.ReportApproved, ReviewedBy: &reviewer, ReviewNote: "nice"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid transition",
			id:   "5",
			body: `{"action":"revoke"}`,
			prepareMock: func() {
				m.reports.EXPECT().Review(gomock.Any(), adminID, 5, "revoke", "").
					Return(nil, fmt.Errorf("%w: can't revoke a pending report", domain.ErrInvalidTransition))
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "validation error: invalid status transition: can't revoke a pending report",
		},
		{
			name:          "Unknown action",
			id:            "5",
			body:          `{"action":"archive"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "action: must be one of: approve reject revoke restore pending delete",
		},
		{
			name: "Missing report",
			id:   "404",
			body: `{"action":"reject"}`,
			prepareMock: func() {
				m.reports.EXPECT().Review(gomock.Any(), adminID, 404, "reject", "").Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:          "Invalid request body",
			id:            "5",
			body:          `{`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/admin/reports/"+tt.id+"/review", bytes.NewBufferString(tt.body)).
				WithContext(adminCtx(tt.id))
			rr := httptest.NewRecorder()

			handler.Review(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestDeleteHandler(t *testing.T) {
	handler, m := NewMock(t)

	t.Run("Rejected report removed", func(t *testing.T) {
		m.reports.EXPECT().Review(gomock.Any(), adminID, 8, "delete", "").
			Return(&domain.SpeciesReport{ID: 8, Status: domain.ReportRejected}, nil)

		req := httptest.NewRequest("DELETE", "/api/admin/reports/8", nil).WithContext(adminCtx("8"))
		rr := httptest.NewRecorder()
		handler.Delete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.DeleteResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, dto.DeleteResponseDTO{Message: "Report deleted", ID: 8}, resp)
	})

	t.Run("Approved report can't be deleted", func(t *testing.T) {
		m.reports.EXPECT().Review(gomock.Any(), adminID, 9, "delete", "").Return(nil, domain.ErrInvalidTransition)

		req := httptest.NewRequest("DELETE", "/api/admin/reports/9", nil).WithContext(adminCtx("9"))
		rr := httptest.NewRecorder()
		handler.Delete(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestBatchHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody *reportservice.BatchResult
	}{
		{
			name: "Mixed outcome",
			body: `{"action":"approve","ids":[1,2,3],"note":""}`,
			prepareMock: func() {
				m.reports.EXPECT().Batch(gomock.Any(), adminID, "approve", []int{1, 2, 3}, "").
					Return(&reportservice.BatchResult{Changed: []int{1}, Skipped: []int{2}, NotFound: []int{3}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &reportservice.BatchResult{Changed: []int{1}, Skipped: []int{2}, NotFound: []int{3}},
		},
		{
			name:         "Empty id list",
			body:         `{"action":"approve","ids":[]}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Rolled back",
			body: `{"action":"delete","ids":[4]}`,
			prepareMock: func() {
				m.reports.EXPECT().Batch(gomock.Any(), adminID, "delete", []int{4}, "").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/admin/reports/batch", bytes.NewBufferString(tt.body)).WithContext(adminCtx(""))
			rr := httptest.NewRecorder()

			handler.Batch(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != nil {
				var resp reportservice.BatchResult
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestEditHandler(t *testing.T) {
	handler, m := NewMock(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("title", "Komodo dragon"))
	require.NoError(t, mw.WriteField("species_name", "Varanus komodoensis"))
	require.NoError(t, mw.WriteField("remove_photos", "uploads/2024/05/a.jpg"))
	require.NoError(t, mw.WriteField("remove_photos", " "))
	fw, err := mw.CreateFormFile("photos", "new.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	m.reports.EXPECT().Edit(gomock.Any(), adminID, 6,
		reportservice.Content{Title: "Komodo dragon", SpeciesName: "Varanus komodoensis"},
		[]string{"uploads/2024/05/a.jpg"},
		gomock.Cond(func(x any) bool {
			photos, ok := x.([]reportservice.Photo)
			return ok && len(photos) == 1 && photos[0].Filename == "new.png"
		}),
	).Return(&domain.SpeciesReport{ID: 6, PhotoPaths: []string{"uploads/2024/05/b.png"}}, nil)

	req := httptest.NewRequest("PUT", "/api/admin/reports/6", body).WithContext(adminCtx("6"))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	handler.Edit(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.ReportDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, []dto.PhotoDTO{{Path: "uploads/2024/05/b.png", URL: "/media/uploads/2024/05/b.png"}}, resp.Photos)
}

func TestAdjustHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Credit",
			body: `{"user_id":7,"delta":50,"note":"event bonus"}`,
			prepareMock: func() {
				m.ledger.EXPECT().Adjust(gomock.Any(), adminID, 7, int64(50), "event bonus").Return(int64(150), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Debit below zero",
			body: `{"user_id":7,"delta":-500}`,
			prepareMock: func() {
				m.ledger.EXPECT().Adjust(gomock.Any(), adminID, 7, int64(-500), "").Return(int64(0), domain.ErrInsufficientPoints)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name:         "Zero delta",
			body:         `{"user_id":7,"delta":0}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Unknown user",
			body: `{"user_id":70,"delta":5}`,
			prepareMock: func() {
				m.ledger.EXPECT().Adjust(gomock.Any(), adminID, 70, int64(5), "").Return(int64(0), domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/admin/points/adjust", bytes.NewBufferString(tt.body)).WithContext(adminCtx(""))
			rr := httptest.NewRecorder()

			handler.Adjust(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, int64(150), resp.Points)
			}
		})
	}
}
