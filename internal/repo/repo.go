package repo

import (
	"github.com/GlebRadaev/komodohub/internal/pg"
	donationrepo "github.com/GlebRadaev/komodohub/internal/repo/donation-repo"
	ledgerrepo "github.com/GlebRadaev/komodohub/internal/repo/ledger-repo"
	questrepo "github.com/GlebRadaev/komodohub/internal/repo/quest-repo"
	reportrepo "github.com/GlebRadaev/komodohub/internal/repo/report-repo"
	shoprepo "github.com/GlebRadaev/komodohub/internal/repo/shop-repo"
	signinrepo "github.com/GlebRadaev/komodohub/internal/repo/signin-repo"
	userrepo "github.com/GlebRadaev/komodohub/internal/repo/user-repo"
	"github.com/GlebRadaev/komodohub/internal/service/ledgerservice"
	"github.com/GlebRadaev/komodohub/internal/service/questservice"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
	"github.com/GlebRadaev/komodohub/internal/service/rewardservice"
	"github.com/GlebRadaev/komodohub/internal/service/shopservice"
	"github.com/GlebRadaev/komodohub/internal/service/userservice"
)

// SigninRepo is written by the reward service and read by the quest board.
type SigninRepo interface {
	rewardservice.SigninRepo
	questservice.SigninRepo
}

type QuestRepo interface {
	rewardservice.QuestRepo
	questservice.QuestRepo
}

type Repositories struct {
	UserRepo     userservice.Repo
	LedgerRepo   ledgerservice.Repo
	SigninRepo   SigninRepo
	QuestRepo    QuestRepo
	ReportRepo   reportservice.Repo
	ShopRepo     shopservice.ShopRepo
	DonationRepo rewardservice.DonationRepo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		LedgerRepo:   ledgerrepo.New(conn),
		SigninRepo:   signinrepo.New(conn),
		QuestRepo:    questrepo.New(conn),
		ReportRepo:   reportrepo.New(conn),
		ShopRepo:     shoprepo.New(conn),
		DonationRepo: donationrepo.New(conn),
	}
}
