package dto

import (
	"time"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

type RegisterRequestDTO struct {
	Email       string `json:"email" validate:"required,email,max=254" example:"ranger@komodo.example"`
	Password    string `json:"password" validate:"required,min=8,max=72" example:"s3cret-pass"`
	DisplayName string `json:"display_name" validate:"max=50" example:"Ranger Ada"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"ranger@komodo.example"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

type TokenResponseDTO struct {
	Message string `json:"message" example:"User successfully authenticated"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type UserDTO struct {
	ID            int       `json:"id" example:"7"`
	Email         string    `json:"email,omitempty" example:"ranger@komodo.example"`
	DisplayName   string    `json:"display_name" example:"Ranger Ada"`
	IsAdmin       bool      `json:"is_admin" example:"false"`
	Bio           string    `json:"bio" example:"Birdwatcher from Labuan Bajo"`
	City          string    `json:"city" example:"Labuan Bajo"`
	PublicProfile bool      `json:"public_profile" example:"true"`
	CreatedAt     time.Time `json:"created_at" example:"2024-05-10T09:00:00Z"`
}

// NewUserDTO hides the email unless withEmail is set.
func NewUserDTO(u *domain.User, withEmail bool) UserDTO {
	out := UserDTO{
		ID:            u.ID,
		DisplayName:   u.DisplayName,
		IsAdmin:       u.IsAdmin,
		Bio:           u.Bio,
		City:          u.City,
		PublicProfile: u.PublicProfile,
		CreatedAt:     u.CreatedAt,
	}
	if withEmail {
		out.Email = u.Email
	}
	return out
}

type ProfileResponseDTO struct {
	User  UserDTO             `json:"user"`
	Stats domain.ProfileStats `json:"stats"`
}

type ProfileUpdateRequestDTO struct {
	DisplayName   string `json:"display_name" validate:"max=50" example:"Ranger Ada"`
	Bio           string `json:"bio" validate:"max=500" example:"Birdwatcher from Labuan Bajo"`
	City          string `json:"city" validate:"max=100" example:"Labuan Bajo"`
	PublicProfile bool   `json:"public_profile" example:"true"`
}
