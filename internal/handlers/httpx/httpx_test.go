package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{"validation", fmt.Errorf("%w: amount", domain.ErrValidation), http.StatusUnprocessableEntity, "validation error: amount"},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity, domain.ErrInvalidTransition.Error()},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"insufficient points", domain.ErrInsufficientPoints, http.StatusPaymentRequired, domain.ErrInsufficientPoints.Error()},
		{"out of stock", domain.ErrOutOfStock, http.StatusPaymentRequired, domain.ErrOutOfStock.Error()},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondWithServiceError(rr, tt.err)

			assert.Equal(t, tt.expectedCode, rr.Code)
			var resp utils.Response
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		ID int `json:"id" validate:"required,gt=0"`
	}

	tests := []struct {
		name         string
		body         string
		ok           bool
		expectedCode int
	}{
		{"valid", `{"id":3}`, true, http.StatusOK},
		{"malformed", `{"id":`, false, http.StatusBadRequest},
		{"fails validation", `{"id":0}`, false, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var p payload

			ok := DecodeJSON(rr, req, &p)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestViewer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, Viewer(req))
	assert.Equal(t, 0, UserID(req))

	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: 4, IsAdmin: true}))
	assert.Equal(t, &domain.Viewer{UserID: 4, IsAdmin: true}, Viewer(req))
	assert.Equal(t, 4, UserID(req))
}

func TestPathID(t *testing.T) {
	tests := []struct {
		param string
		id    int
		ok    bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.param)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			id, ok := PathID(rr, req, "id")

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=20&bad=x", nil)
	assert.Equal(t, 20, QueryInt(req, "limit", 50))
	assert.Equal(t, 50, QueryInt(req, "bad", 50))
	assert.Equal(t, 50, QueryInt(req, "missing", 50))
}
