//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin
package admin

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	"github.com/GlebRadaev/komodohub/internal/service/reportservice"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type ReportService interface {
	ListByStatus(ctx context.Context, status string) (domain.ReportStatus, []domain.SpeciesReport, error)
	Review(ctx context.Context, adminID, id int, action string, note string) (*domain.SpeciesReport, error)
	Batch(ctx context.Context, adminID int, action string, ids []int, note string) (*reportservice.BatchResult, error)
	Edit(ctx context.Context, adminID, id int, content reportservice.Content, removePhotos []string, newPhotos []reportservice.Photo) (*domain.SpeciesReport, error)
}

type LedgerService interface {
	Adjust(ctx context.Context, adminID, userID int, delta int64, note string) (int64, error)
}

type Media interface {
	URL(path string) string
}

type AdminHandler struct {
	reports ReportService
	ledger  LedgerService
	media   Media
}

func New(reports ReportService, ledger LedgerService, media Media) *AdminHandler {
	return &AdminHandler{
		reports: reports,
		ledger:  ledger,
		media:   media,
	}
}

// Queue godoc
//
//	@Summary		Review queue
//	@Description	Reports in one status, oldest first. An unknown status shows the pending queue.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Report status"	Enums(pending, approved, rejected)
//	@Success		200		{object}	dto.QueueResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/reports [get]
func (h *AdminHandler) Queue(w http.ResponseWriter, r *http.Request) {
	status, reports, err := h.reports.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.QueueResponseDTO{
		Status:  string(status),
		Reports: dto.NewReportsDTO(reports, h.media.URL),
	})
}

// Review godoc
//
//	@Summary		Review a report
//	@Description	approve and reject work on pending reports, revoke on approved ones, restore (alias pending) and delete on rejected ones.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Report ID"
//	@Param			request	body		dto.ReviewRequestDTO	true	"Review action"
//	@Success		200		{object}	dto.ReportDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"Report not found"
//	@Failure		422		{object}	utils.Response	"Transition not allowed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/reports/{id}/review [post]
func (h *AdminHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	h.review(w, r, id, req.Action, req.Note)
}

// Delete godoc
//
//	@Summary		Delete a rejected report
//	@Description	Removes the report and, afterwards, its photos.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Report ID"
//	@Success		200	{object}	dto.DeleteResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Report not found"
//	@Failure		422	{object}	utils.Response	"Report is not rejected"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/reports/{id} [delete]
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	h.review(w, r, id, string(domain.ActionDelete), "")
}

func (h *AdminHandler) review(w http.ResponseWriter, r *http.Request, id int, action, note string) {
	rep, err := h.reports.Review(r.Context(), httpx.UserID(r), id, action, note)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	if domain.ReviewAction(action) == domain.ActionDelete {
		utils.RespondWithJSON(w, http.StatusOK, dto.DeleteResponseDTO{Message: "Report deleted", ID: id})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewReportDTO(rep, h.media.URL))
}

// Batch godoc
//
//	@Summary		Review many reports
//	@Description	One action over many reports in a single transaction. Reports the action doesn't apply to are skipped; a blank note keeps existing notes.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BatchReviewRequestDTO	true	"Batch action"
//	@Success		200		{object}	reportservice.BatchResult
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/reports/batch [post]
func (h *AdminHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchReviewRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	res, err := h.reports.Batch(r.Context(), httpx.UserID(r), req.Action, req.IDs, req.Note)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// Edit godoc
//
//	@Summary		Edit a report
//	@Description	Replaces the text fields, drops the photos listed in remove_photos and appends uploaded ones.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			mpfd
//	@Produce		json
//	@Param			id				path		int		true	"Report ID"
//	@Param			title			formData	string	true	"Title"
//	@Param			species_name	formData	string	true	"Scientific name"
//	@Param			description		formData	string	false	"Description"
//	@Param			location_text	formData	string	false	"Where it was seen"
//	@Param			remove_photos	formData	[]string	false	"Stored photo paths to drop"	collectionFormat(multi)
//	@Param			photos			formData	file	false	"New photos"
//	@Success		200				{object}	dto.ReportDTO
//	@Failure		400				{object}	utils.Response	"Invalid request body"
//	@Failure		401				{object}	utils.Response	"User not authorized"
//	@Failure		403				{object}	utils.Response	"Admin access required"
//	@Failure		404				{object}	utils.Response	"Report not found"
//	@Failure		422				{object}	utils.Response	"Validation failed"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/reports/{id} [put]
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := httpx.ParseForm(w, r); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	photos, err := httpx.ReadPhotos(r, "photos")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rep, err := h.reports.Edit(r.Context(), httpx.UserID(r), id, httpx.FormContent(r), httpx.FormList(r, "remove_photos"), photos)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewReportDTO(rep, h.media.URL))
}

// Adjust godoc
//
//	@Summary		Adjust a user's points
//	@Description	Writes a signed correction to the ledger. A debit may not take the balance below zero.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdjustRequestDTO	true	"Adjustment"
//	@Success		200		{object}	dto.BalanceResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient points"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/points/adjust [post]
func (h *AdminHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	balance, err := h.ledger.Adjust(r.Context(), httpx.UserID(r), req.UserID, req.Delta, req.Note)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Points: balance})
}
