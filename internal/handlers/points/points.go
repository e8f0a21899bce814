//go:generate mockgen -source=points.go -destination=mock_points.go -package=points
package points

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	"github.com/GlebRadaev/komodohub/internal/service/questservice"
	"github.com/GlebRadaev/komodohub/internal/service/rewardservice"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

const defaultHistoryLimit = 50

type LedgerService interface {
	GetBalance(ctx context.Context, userID int) (int64, error)
	GetHistory(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error)
}

type RewardService interface {
	SignIn(ctx context.Context, userID int) (rewardservice.Outcome, error)
	ClaimQuest(ctx context.Context, userID int, code string, counters domain.Counters) (rewardservice.Outcome, error)
	Donate(ctx context.Context, userID int, viewer *domain.Viewer, reportID int, amount decimal.Decimal) (rewardservice.Outcome, error)
}

type QuestService interface {
	Snapshot(ctx context.Context, userID int) domain.Counters
	Board(ctx context.Context, userID int) (*questservice.Board, error)
}

type PointsHandler struct {
	ledger  LedgerService
	rewards RewardService
	quests  QuestService
}

func New(ledger LedgerService, rewards RewardService, quests QuestService) *PointsHandler {
	return &PointsHandler{
		ledger:  ledger,
		rewards: rewards,
		quests:  quests,
	}
}

// GetBalance godoc
//
//	@Summary		Get points balance
//	@Description	The balance is the sum of every ledger entry of the authenticated user.
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/points [get]
func (h *PointsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledger.GetBalance(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Points: balance})
}

// GetHistory godoc
//
//	@Summary		Ledger history
//	@Description	Most recent point movements, newest first.
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries (default 50, max 200)"
//	@Success		200		{array}		dto.LedgerEntryDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/points/history [get]
func (h *PointsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.GetHistory(r.Context(), httpx.UserID(r), httpx.QueryInt(r, "limit", defaultHistoryLimit))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewLedgerEntriesDTO(entries))
}

// SignIn godoc
//
//	@Summary		Daily sign-in
//	@Description	Grants the sign-in reward once per UTC day. Repeats answer issued=false.
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.RewardResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/signin [post]
func (h *PointsHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	out, err := h.rewards.SignIn(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newRewardDTO(out))
}

// GetQuests godoc
//
//	@Summary		Today's quests
//	@Description	Progress of every daily quest and whether today's sign-in is done.
//	@Tags			Quests
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	questservice.Board
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/quests [get]
func (h *PointsHandler) GetQuests(w http.ResponseWriter, r *http.Request) {
	board, err := h.quests.Board(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, board)
}

// ClaimQuest godoc
//
//	@Summary		Claim a quest reward
//	@Description	Pays the quest once per day when today's progress reaches the goal. Otherwise answers issued=false.
//	@Tags			Quests
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		string	true	"Quest code"	Enums(view_5, share_1, report_1)
//	@Success		200		{object}	dto.RewardResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Unknown quest"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/quests/{code}/claim [post]
func (h *PointsHandler) ClaimQuest(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserID(r)
	counters := h.quests.Snapshot(r.Context(), userID)
	out, err := h.rewards.ClaimQuest(r.Context(), userID, chi.URLParam(r, "code"), counters)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newRewardDTO(out))
}

// Donate godoc
//
//	@Summary		Donate to a species report
//	@Description	Simulated donation in CNY with at most two decimals. Earns floor(amount) times the configured points per unit.
//	@Tags			Points
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DonateRequestDTO	true	"Donation"
//	@Success		200		{object}	dto.RewardResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Report not visible"
//	@Failure		404		{object}	utils.Response	"Report not found"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/donations [post]
func (h *PointsHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req dto.DonateRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "amount: invalid number")
		return
	}
	out, err := h.rewards.Donate(r.Context(), httpx.UserID(r), httpx.Viewer(r), req.ReportID, amount)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newRewardDTO(out))
}

func newRewardDTO(out rewardservice.Outcome) dto.RewardResponseDTO {
	return dto.RewardResponseDTO{
		Issued:  out.Issued,
		Points:  out.Points,
		Balance: out.Balance,
	}
}
