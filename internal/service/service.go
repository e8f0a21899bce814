package service

import (
	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/pg"
	"github.com/GlebRadaev/komodohub/internal/repo"
	"github.com/GlebRadaev/komodohub/internal/service/ledgerservice"
	"github.com/GlebRadaev/komodohub/internal/service/questservice"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
	"github.com/GlebRadaev/komodohub/internal/service/rewardservice"
	"github.com/GlebRadaev/komodohub/internal/service/shopservice"
	"github.com/GlebRadaev/komodohub/internal/service/userservice"
	"github.com/GlebRadaev/komodohub/internal/taxonomy"
	pkgauth "github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/clients"
	"github.com/GlebRadaev/komodohub/pkg/storage"
)

// Deps are the collaborators that live outside Postgres.
type Deps struct {
	Config        *config.Config
	Economy       config.Economy
	TXManager     pg.TXManager
	Storage       *storage.FileStorage
	Counters      questservice.CounterStore
	TaxonomyCache taxonomy.Cache
	HTTPClient    clients.HTTPClientI
	JWT           *pkgauth.JWTService
}

type Services struct {
	UserService   *userservice.Service
	LedgerService *ledgerservice.Service
	RewardService *rewardservice.Service
	QuestService  *questservice.Service
	ReportService *reportservice.Service
	ShopService   *shopservice.Service
	Taxonomy      *taxonomy.Resolver
	Storage       *storage.FileStorage
	JWT           *pkgauth.JWTService
}

func New(repo *repo.Repositories, deps Deps) *Services {
	questService := questservice.New(deps.Counters, repo.SigninRepo, repo.QuestRepo, deps.Economy)

	return &Services{
		UserService: userservice.New(
			repo.UserRepo,
			repo.LedgerRepo,
			pkgauth.NewHashService(0),
			deps.JWT,
			deps.Config,
		),
		LedgerService: ledgerservice.New(repo.LedgerRepo, deps.TXManager),
		RewardService: rewardservice.New(
			repo.LedgerRepo,
			repo.SigninRepo,
			repo.QuestRepo,
			repo.DonationRepo,
			repo.ReportRepo,
			deps.TXManager,
			deps.Economy,
		),
		QuestService:  questService,
		ReportService: reportservice.New(repo.ReportRepo, deps.Storage, questService, deps.TXManager),
		ShopService:   shopservice.New(repo.ShopRepo, repo.LedgerRepo, deps.TXManager),
		Taxonomy:      taxonomy.New(deps.Config.Taxonomy, deps.HTTPClient, deps.TaxonomyCache),
		Storage:       deps.Storage,
		JWT:           deps.JWT,
	}
}
