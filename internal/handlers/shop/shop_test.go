package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/service/shopservice"
	"github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

func NewMock(t *testing.T) (*ShopHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestListItemsHandler(t *testing.T) {
	handler, service := NewMock(t)
	stock := 50

	service.EXPECT().ListItems(context.Background()).Return([]domain.ShopItem{
		{ID: 1, Kind: domain.ItemVirtual, Title: "Avatar pack", PointsCost: 100, Status: domain.ItemActive},
		{ID: 2, Kind: domain.ItemPhysical, Title: "Tote bag", PointsCost: 5000, Stock: &stock, Status: domain.ItemActive},
	}, nil)

	req := httptest.NewRequest("GET", "/api/shop/items", nil)
	rr := httptest.NewRecorder()
	handler.ListItems(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []dto.ShopItemDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, []dto.ShopItemDTO{
		{ID: 1, Kind: "virtual", Title: "Avatar pack", PointsCost: 100},
		{ID: 2, Kind: "physical", Title: "Tote bag", PointsCost: 5000, Stock: &stock},
	}, resp)
}

func TestRedeemHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 3})
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  *dto.ReceiptResponseDTO
	}{
		{
			name: "Successful redemption",
			body: `{"item_id":1}`,
			prepareMock: func() {
				service.EXPECT().Redeem(ctx, 3, 1, "").Return(&shopservice.Receipt{
					Redemption: &domain.Redemption{ID: 9, UserID: 3, ItemID: 1, ItemTitle: "Avatar pack", PointsCost: 100, Status: domain.RedemptionPending, CreatedAt: at},
					Balance:    20,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.ReceiptResponseDTO{
				Redemption: dto.RedemptionDTO{ID: 9, ItemID: 1, ItemTitle: "Avatar pack", PointsCost: 100, Status: "pending", CreatedAt: at},
				Balance:    20,
			},
		},
		{
			name: "Insufficient points",
			body: `{"item_id":2,"shipping_text":"Labuan Bajo"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(ctx, 3, 2, "Labuan Bajo").Return(nil, domain.ErrInsufficientPoints)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: domain.ErrInsufficientPoints.Error(),
		},
		{
			name: "Out of stock",
			body: `{"item_id":2,"shipping_text":"Labuan Bajo"}`,
			prepareMock: func() {
				service.EXPECT().Redeem(ctx, 3, 2, "Labuan Bajo").Return(nil, domain.ErrOutOfStock)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: domain.ErrOutOfStock.Error(),
		},
		{
			name: "Inactive item",
			body: `{"item_id":4}`,
			prepareMock: func() {
				service.EXPECT().Redeem(ctx, 3, 4, "").Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:          "Missing item id",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "item_id: is required",
		},
		{
			name: "Storage failure",
			body: `{"item_id":1}`,
			prepareMock: func() {
				service.EXPECT().Redeem(ctx, 3, 1, "").Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/redemptions", bytes.NewBufferString(tt.body)).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.Redeem(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedBody != nil {
				var resp dto.ReceiptResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestListRedemptionsHandler(t *testing.T) {
	handler, service := NewMock(t)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: 3})

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Two redemptions",
			prepareMock: func() {
				service.EXPECT().ListRedemptions(ctx, 3).Return([]domain.Redemption{{ID: 2}, {ID: 1}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Service error",
			prepareMock: func() {
				service.EXPECT().ListRedemptions(ctx, 3).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/user/redemptions", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			handler.ListRedemptions(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.RedemptionDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedLen)
			}
		})
	}
}
