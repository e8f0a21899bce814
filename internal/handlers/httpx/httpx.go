package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/utils"
	"github.com/GlebRadaev/komodohub/pkg/validate"
)

// DecodeJSON reads and validates a request DTO. On failure the response has
// already been written and false is returned.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// RespondWithServiceError maps domain errors onto status codes. Messages of
// unexpected errors never reach the client.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInsufficientResource):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// UserID returns the authenticated caller. Routes using it sit behind the
// auth middleware.
func UserID(r *http.Request) int {
	p, _ := auth.FromContext(r.Context())
	return p.UserID
}

// Viewer is nil for anonymous requests.
func Viewer(r *http.Request) *domain.Viewer {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return nil
	}
	return &domain.Viewer{UserID: p.UserID, IsAdmin: p.IsAdmin}
}

// PathID parses a positive integer URL parameter, answering 400 otherwise.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// QueryInt returns def when the parameter is missing or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
