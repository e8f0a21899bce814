//go:generate mockgen -source=reports.go -destination=mock_reports.go -package=reports
package reports

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

const (
	defaultSearchLimit = 50
	// autoLookupTimeout bounds the taxonomy lookup a submission triggers on its own.
	autoLookupTimeout = 3 * time.Second
)

type Service interface {
	Create(ctx context.Context, reporterID int, content reportservice.Content, taxonomy domain.Taxonomy, photos []reportservice.Photo) (*domain.SpeciesReport, error)
	Get(ctx context.Context, viewer *domain.Viewer, id int) (*domain.SpeciesReport, error)
	Share(ctx context.Context, viewer *domain.Viewer, id int) (*domain.SpeciesReport, error)
	Search(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.SpeciesReport, error)
	ListMine(ctx context.Context, userID int) ([]domain.SpeciesReport, error)
}

type TaxonomyResolver interface {
	Lookup(ctx context.Context, name string) (domain.Taxonomy, error)
}

type Media interface {
	URL(path string) string
}

type ReportsHandler struct {
	reportService Service
	resolver      TaxonomyResolver
	media         Media
}

func New(reportService Service, resolver TaxonomyResolver, media Media) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
		resolver:      resolver,
		media:         media,
	}
}

// Create godoc
//
//	@Summary		Submit a species report
//	@Description	Multipart form with 1 to 3 JPEG or PNG photos of at most 5 MiB each. When no taxonomy is given it is looked up by species name.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Accept			mpfd
//	@Produce		json
//	@Param			title			formData	string	true	"Title"
//	@Param			species_name	formData	string	true	"Scientific name"
//	@Param			description		formData	string	false	"Description"
//	@Param			location_text	formData	string	false	"Where it was seen"
//	@Param			phylum			formData	string	false	"Phylum"
//	@Param			class_name		formData	string	false	"Class"
//	@Param			order_name		formData	string	false	"Order"
//	@Param			family			formData	string	false	"Family"
//	@Param			genus			formData	string	false	"Genus"
//	@Param			photos			formData	file	true	"Photos"
//	@Success		201				{object}	dto.ReportDTO
//	@Failure		400				{object}	utils.Response	"Invalid request body"
//	@Failure		401				{object}	utils.Response	"User not authorized"
//	@Failure		422				{object}	utils.Response	"Validation failed"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/reports [post]
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := httpx.ParseForm(w, r); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	photos, err := httpx.ReadPhotos(r, "photos")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	content := httpx.FormContent(r)
	taxonomy := domain.Taxonomy{
		Phylum:    r.FormValue("phylum"),
		ClassName: r.FormValue("class_name"),
		OrderName: r.FormValue("order_name"),
		Family:    r.FormValue("family"),
		Genus:     r.FormValue("genus"),
	}
	if taxonomy.IsEmpty() && content.SpeciesName != "" {
		taxonomy = h.lookup(r.Context(), content.SpeciesName)
	}

	rep, err := h.reportService.Create(r.Context(), httpx.UserID(r), content, taxonomy, photos)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewReportDTO(rep, h.media.URL))
}

// lookup fills the taxonomy of a submission that left it blank. It never
// blocks the submission: any failure, including a phylum outside the
// allow-list, leaves the taxonomy empty.
func (h *ReportsHandler) lookup(ctx context.Context, name string) domain.Taxonomy {
	ctx, cancel := context.WithTimeout(ctx, autoLookupTimeout)
	defer cancel()

	t, err := h.resolver.Lookup(ctx, name)
	if err != nil {
		zap.L().Info("taxonomy lookup skipped", zap.String("species", name), zap.Error(err))
		return domain.Taxonomy{}
	}
	return t
}

// Get godoc
//
//	@Summary		Get a report
//	@Description	Approved reports are public; others are visible to their reporter and admins only.
//	@Tags			Reports
//	@Produce		json
//	@Param			id	path		int	true	"Report ID"
//	@Success		200	{object}	dto.ReportDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		403	{object}	utils.Response	"Report not visible"
//	@Failure		404	{object}	utils.Response	"Report not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/{id} [get]
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.visit(w, r, h.reportService.Get)
}

// Share godoc
//
//	@Summary		Share a report
//	@Description	Counts a share towards the caller's daily quests and returns the report.
//	@Tags			Reports
//	@Produce		json
//	@Param			id	path		int	true	"Report ID"
//	@Success		200	{object}	dto.ReportDTO
//	@Failure		400	{object}	utils.Response	"Invalid id"
//	@Failure		403	{object}	utils.Response	"Report not visible"
//	@Failure		404	{object}	utils.Response	"Report not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/{id}/share [post]
func (h *ReportsHandler) Share(w http.ResponseWriter, r *http.Request) {
	h.visit(w, r, h.reportService.Share)
}

func (h *ReportsHandler) visit(w http.ResponseWriter, r *http.Request, fn func(context.Context, *domain.Viewer, int) (*domain.SpeciesReport, error)) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	rep, err := fn(r.Context(), httpx.Viewer(r), id)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewReportDTO(rep, h.media.URL))
}

// Search godoc
//
//	@Summary		Search approved reports
//	@Description	Full-text match on title, species name and description, with optional taxonomy filters.
//	@Tags			Reports
//	@Produce		json
//	@Param			q			query		string	false	"Search text"
//	@Param			phylum		query		string	false	"Phylum"
//	@Param			class_name	query		string	false	"Class"
//	@Param			order_name	query		string	false	"Order"
//	@Param			family		query		string	false	"Family"
//	@Param			genus		query		string	false	"Genus"
//	@Param			limit		query		int		false	"Max results (default 50, max 200)"
//	@Success		200			{array}		dto.ReportDTO
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/reports [get]
func (h *ReportsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ReportFilter{
		Query: q.Get("q"),
		Taxonomy: domain.Taxonomy{
			Phylum:    q.Get("phylum"),
			ClassName: q.Get("class_name"),
			OrderName: q.Get("order_name"),
			Family:    q.Get("family"),
			Genus:     q.Get("genus"),
		},
	}
	reports, err := h.reportService.Search(r.Context(), filter, httpx.QueryInt(r, "limit", defaultSearchLimit))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewReportsDTO(reports, h.media.URL))
}

// ListMine godoc
//
//	@Summary		My reports
//	@Description	Every report of the authenticated user in any status, newest first.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ReportDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/reports [get]
func (h *ReportsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListMine(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewReportsDTO(reports, h.media.URL))
}
