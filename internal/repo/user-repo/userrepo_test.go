package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

var userCols = []string{"id", "email", "password_hash", "display_name", "is_admin", "bio", "city", "public_profile", "created_at"}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE email = $1")

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			email: "kate@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows(userCols).
					AddRow(1, "kate@example.com", "hash", "Kate", false, "", "Hangzhou", true, created)
				mock.ExpectQuery(query).WithArgs("kate@example.com").WillReturnRows(rows)
			},
			result: &domain.User{
				ID: 1, Email: "kate@example.com", PasswordHash: "hash", DisplayName: "Kate",
				City: "Hangzhou", PublicProfile: true, CreatedAt: created,
			},
		},
		{
			name:  "User not found",
			email: "nobody@example.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:  "Database error",
			email: "kate@example.com",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("kate@example.com").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")

	mock.ExpectQuery(query).WithArgs(5).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(5, "a@b.io", "h", "Admin", true, "bio", "", false, time.Time{}))
	user, err := repo.FindByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "bio", user.Bio)

	mock.ExpectQuery(query).WithArgs(6).WillReturnError(pgx.ErrNoRows)
	user, err = repo.FindByID(context.Background(), 6)
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`INSERT INTO users (email, password_hash, display_name, is_admin) VALUES ($1, $2, $3, $4) RETURNING id, created_at`)
	now := time.Now()

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
		anyErr      bool
	}{
		{
			name: "Created",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("kate@example.com", "hash", "Kate", false).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(3, now))
			},
		},
		{
			name: "Email taken",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("kate@example.com", "hash", "Kate", false).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectedErr: domain.ErrEmailTaken,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("kate@example.com", "hash", "Kate", false).
					WillReturnError(errors.New("database error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.Create(context.Background(), &domain.User{Email: "kate@example.com", PasswordHash: "hash", DisplayName: "Kate"})
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, 3, user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateProfile(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`UPDATE users SET display_name = $1, bio = NULLIF($2, ''), city = NULLIF($3, ''), public_profile = $4 WHERE id = $5`)
	user := &domain.User{ID: 2, DisplayName: "Kate", Bio: "birder", PublicProfile: true}

	mock.ExpectExec(query).WithArgs("Kate", "birder", "", true, 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateProfile(context.Background(), user))

	mock.ExpectExec(query).WithArgs("Kate", "birder", "", true, 2).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateProfile(context.Background(), user), domain.ErrNotFound)

	mock.ExpectExec(query).WithArgs("Kate", "birder", "", true, 2).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateProfile(context.Background(), user))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Stats(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT (SELECT COUNT(*) FROM species_reports WHERE reporter_id = $1)`)

	mock.ExpectQuery(query).WithArgs(4).
		WillReturnRows(pgxmock.NewRows([]string{"total", "approved", "donated"}).AddRow(3, 2, int64(1250)))
	stats, err := repo.Stats(context.Background(), 4)
	assert.NoError(t, err)
	assert.Equal(t, &domain.ProfileStats{TotalReports: 3, ApprovedReports: 2, DonatedCents: 1250}, stats)

	mock.ExpectQuery(query).WithArgs(4).WillReturnError(errors.New("database error"))
	_, err = repo.Stats(context.Background(), 4)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
