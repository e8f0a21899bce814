package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateJWT(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		userID         int
		expirationTime time.Time
		expectError    bool
	}{
		{
			name:           "Valid Token",
			secret:         testSecret,
			userID:         123,
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Expired Token",
			secret:         testSecret,
			userID:         123,
			expirationTime: time.Now().Add(-time.Hour),
		},
		{
			name:           "Missing Secret",
			userID:         123,
			expirationTime: time.Now().Add(time.Hour),
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := NewJWTService(tt.secret).GenerateJWT(tt.userID, false, tt.expirationTime)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name        string
		tokenString string
		setup       func() string
		expectError bool
		expectAdmin bool
	}{
		{
			name: "Valid Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, false, time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name: "Admin Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(1, true, time.Now().Add(time.Hour))
				return token
			},
			expectAdmin: true,
		},
		{
			name:        "Invalid Token",
			tokenString: "invalid.token.string",
			expectError: true,
		},
		{
			name: "Expired Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, false, time.Now().Add(-time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Foreign Secret",
			setup: func() string {
				token, _ := NewJWTService("other").GenerateJWT(123, true, time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Invalid Claims Type",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
					Issuer:    issuer,
				})
				signedToken, _ := token.SignedString([]byte(testSecret))
				return signedToken
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := tt.tokenString
			if tt.setup != nil {
				tokenString = tt.setup()
			}

			claims, err := jwtService.ValidateToken(tokenString)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectAdmin, claims.IsAdmin)
		})
	}
}
