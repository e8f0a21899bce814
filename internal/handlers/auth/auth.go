//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	"github.com/GlebRadaev/komodohub/internal/service/userservice"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GenerateToken(user *domain.User) (string, error)
	Profile(ctx context.Context, userID int) (*userservice.Profile, error)
	PublicProfile(ctx context.Context, viewer *domain.Viewer, userID int) (*userservice.Profile, error)
	UpdateProfile(ctx context.Context, userID int, upd userservice.ProfileUpdate) (*domain.User, error)
}

type AuthHandler struct {
	userService Service
}

func New(userService Service) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create an account with email and password. Emails listed in ADMIN_EMAILS become administrators.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"User already exists"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if errors.Is(err, domain.ErrEmailTaken) {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	h.respondWithToken(w, user, "User successfully registered")
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with email and password and get a JWT token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	h.respondWithToken(w, user, "User successfully authenticated")
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *domain.User, message string) {
	token, err := h.userService.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{
		Message: message,
		Token:   token,
	})
}

// Me godoc
//
//	@Summary		Current user's profile
//	@Description	Profile, activity stats and points balance of the authenticated user
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.userService.Profile(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newProfileDTO(p, true))
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Change display name, bio, city and profile visibility. A blank display name keeps the current one.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ProfileUpdateRequestDTO	true	"Profile fields"
//	@Success		200		{object}	dto.UserDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileUpdateRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.userService.UpdateProfile(r.Context(), httpx.UserID(r), userservice.ProfileUpdate{
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		City:          req.City,
		PublicProfile: req.PublicProfile,
	})
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserDTO(user, true))
}

// PublicProfile godoc
//
//	@Summary		Another user's profile
//	@Description	Visible when the user made their profile public; owners and admins always see it
//	@Tags			Profile
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	dto.ProfileResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		403	{object}	utils.Response	"Profile is private"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{id} [get]
func (h *AuthHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	viewer := httpx.Viewer(r)
	p, err := h.userService.PublicProfile(r.Context(), viewer, id)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	self := viewer != nil && (viewer.UserID == id || viewer.IsAdmin)
	utils.RespondWithJSON(w, http.StatusOK, newProfileDTO(p, self))
}

func newProfileDTO(p *userservice.Profile, withEmail bool) dto.ProfileResponseDTO {
	out := dto.ProfileResponseDTO{User: dto.NewUserDTO(p.User, withEmail)}
	if p.Stats != nil {
		out.Stats = *p.Stats
	}
	return out
}
