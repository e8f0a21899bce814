package dto

import (
	"time"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

type ShopItemDTO struct {
	ID          int    `json:"id" example:"2"`
	Kind        string `json:"kind" example:"physical"`
	Title       string `json:"title" example:"Komodo Hub tote bag"`
	Description string `json:"description" example:"Organic cotton tote"`
	PointsCost  int64  `json:"points_cost" example:"5000"`
	Stock       *int   `json:"stock" example:"50"`
	MediaURL    string `json:"media_url,omitempty" example:""`
}

func NewShopItemsDTO(items []domain.ShopItem) []ShopItemDTO {
	out := make([]ShopItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ShopItemDTO{
			ID:          it.ID,
			Kind:        string(it.Kind),
			Title:       it.Title,
			Description: it.Description,
			PointsCost:  it.PointsCost,
			Stock:       it.Stock,
			MediaURL:    it.MediaURL,
		})
	}
	return out
}

type RedeemRequestDTO struct {
	ItemID       int    `json:"item_id" validate:"required,gt=0" example:"2"`
	ShippingText string `json:"shipping_text" validate:"max=500" example:"Jl. Soekarno Hatta 1, Labuan Bajo"`
}

type RedemptionDTO struct {
	ID           int       `json:"id" example:"3"`
	ItemID       int       `json:"item_id" example:"2"`
	ItemTitle    string    `json:"item_title,omitempty" example:"Komodo Hub tote bag"`
	PointsCost   int64     `json:"points_cost" example:"5000"`
	Status       string    `json:"status" example:"pending"`
	ShippingText string    `json:"shipping_text,omitempty" example:"Jl. Soekarno Hatta 1, Labuan Bajo"`
	CreatedAt    time.Time `json:"created_at" example:"2024-05-10T09:00:00Z"`
}

func NewRedemptionDTO(r *domain.Redemption) RedemptionDTO {
	return RedemptionDTO{
		ID:           r.ID,
		ItemID:       r.ItemID,
		ItemTitle:    r.ItemTitle,
		PointsCost:   r.PointsCost,
		Status:       string(r.Status),
		ShippingText: r.ShippingText,
		CreatedAt:    r.CreatedAt,
	}
}

func NewRedemptionsDTO(reds []domain.Redemption) []RedemptionDTO {
	out := make([]RedemptionDTO, 0, len(reds))
	for i := range reds {
		out = append(out, NewRedemptionDTO(&reds[i]))
	}
	return out
}

type ReceiptResponseDTO struct {
	Redemption RedemptionDTO `json:"redemption"`
	Balance    int64         `json:"balance" example:"250"`
}
