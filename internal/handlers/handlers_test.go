package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/komodohub/internal/service"
	"github.com/GlebRadaev/komodohub/pkg/auth"
)

func TestNew(t *testing.T) {
	services := &service.Services{JWT: auth.NewJWTService("secret")}

	h := New(services, http.NotFoundHandler())
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.PointsHandler)
	assert.NotNil(t, h.ReportsHandler)
	assert.NotNil(t, h.AdminHandler)
	assert.NotNil(t, h.ShopHandler)
	assert.NotNil(t, h.TaxonomyHandler)
	assert.NotNil(t, h.Media)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockPointsHandler := NewMockPointsHandler(ctrl)
	mockReportsHandler := NewMockReportsHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)
	mockShopHandler := NewMockShopHandler(ctrl)
	mockTaxonomyHandler := NewMockTaxonomyHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().PublicProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().GetHistory(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().SignIn(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().GetQuests(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().ClaimQuest(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().Donate(gomock.Any(), gomock.Any()).AnyTimes()
	mockReportsHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	mockReportsHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()
	mockReportsHandler.EXPECT().Share(gomock.Any(), gomock.Any()).AnyTimes()
	mockReportsHandler.EXPECT().Search(gomock.Any(), gomock.Any()).AnyTimes()
	mockReportsHandler.EXPECT().ListMine(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Queue(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Review(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Delete(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Batch(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Edit(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Adjust(gomock.Any(), gomock.Any()).AnyTimes()
	mockShopHandler.EXPECT().ListItems(gomock.Any(), gomock.Any()).AnyTimes()
	mockShopHandler.EXPECT().Redeem(gomock.Any(), gomock.Any()).AnyTimes()
	mockShopHandler.EXPECT().ListRedemptions(gomock.Any(), gomock.Any()).AnyTimes()
	mockTaxonomyHandler.EXPECT().Lookup(gomock.Any(), gomock.Any()).AnyTimes()
	mockTaxonomyHandler.EXPECT().Tree(gomock.Any(), gomock.Any()).AnyTimes()

	jwtService := auth.NewJWTService("secret")
	userToken, err := jwtService.GenerateJWT(2, false, time.Now().Add(time.Hour))
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateJWT(1, true, time.Now().Add(time.Hour))
	require.NoError(t, err)

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		PointsHandler:   mockPointsHandler,
		ReportsHandler:  mockReportsHandler,
		AdminHandler:    mockAdminHandler,
		ShopHandler:     mockShopHandler,
		TaxonomyHandler: mockTaxonomyHandler,
		Authenticator:   jwtService,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/user/register", "", http.StatusOK},
		{"POST", "/api/user/login", "", http.StatusOK},
		{"GET", "/api/reports", "", http.StatusOK},
		{"GET", "/api/reports/3", "", http.StatusOK},
		{"POST", "/api/reports/3/share", "", http.StatusOK},
		{"GET", "/api/users/3", "", http.StatusOK},
		{"GET", "/api/shop/items", "", http.StatusOK},
		{"GET", "/api/taxonomy", "", http.StatusOK},
		{"GET", "/api/taxonomy/tree", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"POST", "/api/reports", "", http.StatusUnauthorized},
		{"GET", "/api/user/profile", "", http.StatusUnauthorized},
		{"GET", "/api/user/points", "", http.StatusUnauthorized},
		{"POST", "/api/user/signin", "", http.StatusUnauthorized},
		{"POST", "/api/user/quests/view_5/claim", "", http.StatusUnauthorized},
		{"POST", "/api/user/donations", "", http.StatusUnauthorized},
		{"POST", "/api/user/redemptions", "", http.StatusUnauthorized},
		{"GET", "/api/user/points", "bad-token", http.StatusUnauthorized},
		{"GET", "/api/user/points", userToken, http.StatusOK},
		{"GET", "/api/user/points/history", userToken, http.StatusOK},
		{"PUT", "/api/user/profile", userToken, http.StatusOK},
		{"GET", "/api/user/quests", userToken, http.StatusOK},
		{"POST", "/api/user/quests/view_5/claim", userToken, http.StatusOK},
		{"POST", "/api/reports", userToken, http.StatusOK},
		{"GET", "/api/user/reports", userToken, http.StatusOK},
		{"GET", "/api/user/redemptions", userToken, http.StatusOK},
		{"GET", "/api/admin/reports", "", http.StatusUnauthorized},
		{"GET", "/api/admin/reports", userToken, http.StatusForbidden},
		{"POST", "/api/admin/points/adjust", userToken, http.StatusForbidden},
		{"GET", "/api/admin/reports", adminToken, http.StatusOK},
		{"POST", "/api/admin/reports/batch", adminToken, http.StatusOK},
		{"POST", "/api/admin/reports/3/review", adminToken, http.StatusOK},
		{"PUT", "/api/admin/reports/3", adminToken, http.StatusOK},
		{"DELETE", "/api/admin/reports/3", adminToken, http.StatusOK},
		{"POST", "/api/admin/points/adjust", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
