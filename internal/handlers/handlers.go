//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/komodohub/docs"
	adminhandlers "github.com/GlebRadaev/komodohub/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/komodohub/internal/handlers/auth"
	pointshandlers "github.com/GlebRadaev/komodohub/internal/handlers/points"
	reportshandlers "github.com/GlebRadaev/komodohub/internal/handlers/reports"
	shophandlers "github.com/GlebRadaev/komodohub/internal/handlers/shop"
	taxonomyhandlers "github.com/GlebRadaev/komodohub/internal/handlers/taxonomy"
	"github.com/GlebRadaev/komodohub/internal/service"
	"github.com/GlebRadaev/komodohub/internal/taxonomy"
	"github.com/GlebRadaev/komodohub/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	PublicProfile(w http.ResponseWriter, r *http.Request)
}

type PointsHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	SignIn(w http.ResponseWriter, r *http.Request)
	GetQuests(w http.ResponseWriter, r *http.Request)
	ClaimQuest(w http.ResponseWriter, r *http.Request)
	Donate(w http.ResponseWriter, r *http.Request)
}

type ReportsHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Share(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Queue(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Batch(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
}

type ShopHandler interface {
	ListItems(w http.ResponseWriter, r *http.Request)
	Redeem(w http.ResponseWriter, r *http.Request)
	ListRedemptions(w http.ResponseWriter, r *http.Request)
}

type TaxonomyHandler interface {
	Lookup(w http.ResponseWriter, r *http.Request)
	Tree(w http.ResponseWriter, r *http.Request)
}

// Authenticator puts the caller's principal into the request context.
type Authenticator interface {
	Middleware(next http.Handler) http.Handler
	Optional(next http.Handler) http.Handler
}

type Handlers struct {
	AuthHandler     AuthHandler
	PointsHandler   PointsHandler
	ReportsHandler  ReportsHandler
	AdminHandler    AdminHandler
	ShopHandler     ShopHandler
	TaxonomyHandler TaxonomyHandler
	Authenticator   Authenticator

	// Media serves locally stored photos; nil when photos live in a bucket.
	Media http.Handler
}

func New(s *service.Services, media http.Handler) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.UserService),
		PointsHandler:   pointshandlers.New(s.LedgerService, s.RewardService, s.QuestService),
		ReportsHandler:  reportshandlers.New(s.ReportService, s.Taxonomy, s.Storage),
		AdminHandler:    adminhandlers.New(s.ReportService, s.LedgerService, s.Storage),
		ShopHandler:     shophandlers.New(s.ShopService),
		TaxonomyHandler: taxonomyhandlers.New(s.Taxonomy, taxonomy.DefaultTree()),
		Authenticator:   s.JWT,
		Media:           media,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	if h.Media != nil {
		r.Handle("/media/*", http.StripPrefix("/media/", h.Media))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Optional)
			r.Get("/reports", h.ReportsHandler.Search)
			r.Get("/reports/{id}", h.ReportsHandler.Get)
			r.Post("/reports/{id}/share", h.ReportsHandler.Share)
			r.Get("/users/{id}", h.AuthHandler.PublicProfile)
			r.Get("/shop/items", h.ShopHandler.ListItems)
			r.Get("/taxonomy", h.TaxonomyHandler.Lookup)
			r.Get("/taxonomy/tree", h.TaxonomyHandler.Tree)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.Middleware)
			r.Post("/reports", h.ReportsHandler.Create)

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", h.AuthHandler.Me)
				r.Put("/profile", h.AuthHandler.UpdateProfile)
				r.Get("/points", h.PointsHandler.GetBalance)
				r.Get("/points/history", h.PointsHandler.GetHistory)
				r.Post("/signin", h.PointsHandler.SignIn)
				r.Get("/quests", h.PointsHandler.GetQuests)
				r.Post("/quests/{code}/claim", h.PointsHandler.ClaimQuest)
				r.Post("/donations", h.PointsHandler.Donate)
				r.Get("/reports", h.ReportsHandler.ListMine)
				r.Get("/redemptions", h.ShopHandler.ListRedemptions)
				r.Post("/redemptions", h.ShopHandler.Redeem)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/reports", h.AdminHandler.Queue)
				r.Post("/reports/batch", h.AdminHandler.Batch)
				r.Post("/reports/{id}/review", h.AdminHandler.Review)
				r.Put("/reports/{id}", h.AdminHandler.Edit)
				r.Delete("/reports/{id}", h.AdminHandler.Delete)
				r.Post("/points/adjust", h.AdminHandler.Adjust)
			})
		})
	})

	return r
}
