package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	donationrepo "github.com/GlebRadaev/komodohub/internal/repo/donation-repo"
	ledgerrepo "github.com/GlebRadaev/komodohub/internal/repo/ledger-repo"
	questrepo "github.com/GlebRadaev/komodohub/internal/repo/quest-repo"
	reportrepo "github.com/GlebRadaev/komodohub/internal/repo/report-repo"
	shoprepo "github.com/GlebRadaev/komodohub/internal/repo/shop-repo"
	signinrepo "github.com/GlebRadaev/komodohub/internal/repo/signin-repo"
	userrepo "github.com/GlebRadaev/komodohub/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &signinrepo.Repository{}, repo.SigninRepo)
	assert.IsType(t, &questrepo.Repository{}, repo.QuestRepo)
	assert.IsType(t, &reportrepo.Repository{}, repo.ReportRepo)
	assert.IsType(t, &shoprepo.Repository{}, repo.ShopRepo)
	assert.IsType(t, &donationrepo.Repository{}, repo.DonationRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
