//go:generate mockgen -source=shop.go -destination=mock_shop.go -package=shop
package shop

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/dto"
	"github.com/GlebRadaev/komodohub/internal/handlers/httpx"
	"github.com/GlebRadaev/komodohub/internal/service/shopservice"
	"github.com/GlebRadaev/komodohub/pkg/utils"
)

type Service interface {
	ListItems(ctx context.Context) ([]domain.ShopItem, error)
	Redeem(ctx context.Context, userID, itemID int, shippingText string) (*shopservice.Receipt, error)
	ListRedemptions(ctx context.Context, userID int) ([]domain.Redemption, error)
}

type ShopHandler struct {
	shopService Service
}

func New(shopService Service) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

// ListItems godoc
//
//	@Summary		Shop catalogue
//	@Description	Active items. A null stock means unlimited.
//	@Tags			Shop
//	@Produce		json
//	@Success		200	{array}		dto.ShopItemDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/shop/items [get]
func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shopService.ListItems(r.Context())
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewShopItemsDTO(items))
}

// Redeem godoc
//
//	@Summary		Redeem an item
//	@Description	Spends points on an item. Physical items need shipping details.
//	@Tags			Shop
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RedeemRequestDTO	true	"Redemption"
//	@Success		200		{object}	dto.ReceiptResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient points or out of stock"
//	@Failure		404		{object}	utils.Response	"Item not found"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/redemptions [post]
func (h *ShopHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req dto.RedeemRequestDTO
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	receipt, err := h.shopService.Redeem(r.Context(), httpx.UserID(r), req.ItemID, req.ShippingText)
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReceiptResponseDTO{
		Redemption: dto.NewRedemptionDTO(receipt.Redemption),
		Balance:    receipt.Balance,
	})
}

// ListRedemptions godoc
//
//	@Summary		My redemptions
//	@Description	Redemptions of the authenticated user, newest first.
//	@Tags			Shop
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.RedemptionDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/redemptions [get]
func (h *ShopHandler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	reds, err := h.shopService.ListRedemptions(r.Context(), httpx.UserID(r))
	if err != nil {
		httpx.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRedemptionsDTO(reds))
}
