package points

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/service/questservice"
	"github.com/GlebRadaev/komodohub/internal/service/rewardservice"
	"github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type mocks struct {
	ledger  *MockLedgerService
	rewards *MockRewardService
	quests  *MockQuestService
}

func NewMock(t *testing.T) (*PointsHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		ledger:  NewMockLedgerService(ctrl),
		rewards: NewMockRewardService(ctrl),
		quests:  NewMockQuestService(ctrl),
	}
	handler := New(m.ledger, m.rewards, m.quests)
	defer ctrl.Finish()
	return handler, m
}

func amountEq(s string) gomock.Matcher {
	want := decimal.RequireFromString(s)
	return gomock.Cond(func(x any) bool {
		d, ok := x.(decimal.Decimal)
		return ok && d.Equal(want)
	})
}

func userCtx(userID int) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: userID})
}

func TestGetBalanceHandler(t *testing.T) {
	handler, m := NewMock(t)
	ctx := userCtx(1)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				m.ledger.EXPECT().GetBalance(ctx, 1).Return(int64(1250), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{Points: 1250},
		},
		{
			name: "Service error",
			prepareMock: func() {
				m.ledger.EXPECT().GetBalance(ctx, 1).Return(int64(0), errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/user/points", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestGetHistoryHandler(t *testing.T) {
	handler, m := NewMock(t)
	ctx := userCtx(1)
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
		expectedBody []dto.LedgerEntryDTO
	}{
		{
			name:  "Default limit",
			query: "",
			prepareMock: func() {
				m.ledger.EXPECT().GetHistory(ctx, 1, 50).Return([]domain.LedgerEntry{
					{ID: 2, UserID: 1, Delta: -100, Reason: domain.ReasonRedeem, RefType: domain.RefRedemption, RefID: 3, CreatedAt: at},
					{ID: 1, UserID: 1, Delta: 10, Reason: domain.ReasonSignin, RefType: domain.RefSignin, RefID: 1, CreatedAt: at},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.LedgerEntryDTO{
				{ID: 2, Delta: -100, Reason: "redeem", RefType: "redemption", RefID: 3, CreatedAt: at},
				{ID: 1, Delta: 10, Reason: "signin", RefType: "daily", RefID: 1, CreatedAt: at},
			},
		},
		{
			name:  "Custom limit, empty history",
			query: "?limit=5",
			prepareMock: func() {
				m.ledger.EXPECT().GetHistory(ctx, 1, 5).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.LedgerEntryDTO{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/user/points/history"+tt.query, nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.GetHistory(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			var resp []dto.LedgerEntryDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestSignInHandler(t *testing.T) {
	handler, m := NewMock(t)
	ctx := userCtx(1)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.RewardResponseDTO
	}{
		{
			name: "First sign-in of the day",
			prepareMock: func() {
				m.rewards.EXPECT().SignIn(ctx, 1).Return(rewardservice.Outcome{Issued: true, Points: 10, Balance: 110}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.RewardResponseDTO{Issued: true, Points: 10, Balance: 110},
		},
		{
			name: "Repeat is a no-op",
			prepareMock: func() {
				m.rewards.EXPECT().SignIn(ctx, 1).Return(rewardservice.Outcome{Balance: 110}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.RewardResponseDTO{Balance: 110},
		},
		{
			name: "Service error",
			prepareMock: func() {
				m.rewards.EXPECT().SignIn(ctx, 1).Return(rewardservice.Outcome{}, errors.New("serialization failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/signin", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.SignIn(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.RewardResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestGetQuestsHandler(t *testing.T) {
	handler, m := NewMock(t)
	ctx := userCtx(1)
	board := &questservice.Board{
		Date:         "2024-05-10",
		SignedToday:  true,
		SigninPoints: 10,
		Quests: []questservice.QuestStatus{
			{Code: domain.QuestView5, Title: "View 5 reports", Need: 5, Points: 5, Progress: 2},
		},
	}

	m.quests.EXPECT().Board(ctx, 1).Return(board, nil)

	req := httptest.NewRequest("GET", "/api/user/quests", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.GetQuests(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp questservice.Board
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, *board, resp)
}

func TestClaimQuestHandler(t *testing.T) {
	handler, m := NewMock(t)
	counters := domain.Counters{Date: "2024-05-10", Views: 5}

	tests := []struct {
		name          string
		code          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.RewardResponseDTO
	}{
		{
			name: "Quest completed",
			code: "view_5",
			prepareMock: func() {
				m.quests.EXPECT().Snapshot(gomock.Any(), 1).Return(counters)
				m.rewards.EXPECT().ClaimQuest(gomock.Any(), 1, "view_5", counters).
					Return(rewardservice.Outcome{Issued: true, Points: 5, Balance: 15}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.RewardResponseDTO{Issued: true, Points: 5, Balance: 15},
		},
		{
			name: "Not enough progress",
			code: "share_1",
			prepareMock: func() {
				m.quests.EXPECT().Snapshot(gomock.Any(), 1).Return(counters)
				m.rewards.EXPECT().ClaimQuest(gomock.Any(), 1, "share_1", counters).
					Return(rewardservice.Outcome{Balance: 10}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.RewardResponseDTO{Balance: 10},
		},
		{
			name: "Unknown quest",
			code: "fly_to_moon",
			prepareMock: func() {
				m.quests.EXPECT().Snapshot(gomock.Any(), 1).Return(counters)
				m.rewards.EXPECT().ClaimQuest(gomock.Any(), 1, "fly_to_moon", counters).
					Return(rewardservice.Outcome{}, fmt.Errorf("%w: quest %q", domain.ErrNotFound, "fly_to_moon"))
			},
			expectedCode:  http.StatusNotFound,
			expectedError: `not found: quest "fly_to_moon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("code", tt.code)
			ctx := context.WithValue(userCtx(1), chi.RouteCtxKey, rctx)
			req := httptest.NewRequest("POST", "/api/user/quests/"+tt.code+"/claim", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.ClaimQuest(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var resp dto.RewardResponseDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

func TestDonateHandler(t *testing.T) {
	handler, m := NewMock(t)
	ctx := userCtx(1)
	viewer := &domain.Viewer{UserID: 1}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful donation",
			body: `{"report_id":12,"amount":"25.50"}`,
			prepareMock: func() {
				m.rewards.EXPECT().Donate(ctx, 1, viewer, 12, amountEq("25.50")).
					Return(rewardservice.Outcome{Issued: true, Points: 250, Balance: 300}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"report_id":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing report",
			body:          `{"amount":"5"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "report_id: is required",
		},
		{
			name:          "Amount is not a number",
			body:          `{"report_id":12,"amount":"ten"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "amount: invalid number",
		},
		{
			name: "Negative amount rejected by service",
			body: `{"report_id":12,"amount":"-1"}`,
			prepareMock: func() {
				m.rewards.EXPECT().Donate(ctx, 1, viewer, 12, amountEq("-1")).
					Return(rewardservice.Outcome{}, fmt.Errorf("%w: amount must be positive", domain.ErrValidation))
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "validation error: amount must be positive",
		},
		{
			name: "Hidden report",
			body: `{"report_id":12,"amount":"1"}`,
			prepareMock: func() {
				m.rewards.EXPECT().Donate(ctx, 1, viewer, 12, amountEq("1")).
					Return(rewardservice.Outcome{}, domain.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/donations", bytes.NewReader([]byte(tt.body))).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.Donate(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}
