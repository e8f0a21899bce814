package dto

import (
	"time"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

type BalanceResponseDTO struct {
	Points int64 `json:"points" example:"1250"`
}

type LedgerEntryDTO struct {
	ID        int64     `json:"id" example:"42"`
	Delta     int64     `json:"delta" example:"-100"`
	Reason    string    `json:"reason" example:"redeem"`
	RefType   string    `json:"ref_type,omitempty" example:"redemption"`
	RefID     int       `json:"ref_id,omitempty" example:"3"`
	Note      string    `json:"note,omitempty" example:""`
	CreatedAt time.Time `json:"created_at" example:"2024-05-10T09:00:00Z"`
}

func NewLedgerEntriesDTO(entries []domain.LedgerEntry) []LedgerEntryDTO {
	out := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryDTO{
			ID:        e.ID,
			Delta:     e.Delta,
			Reason:    string(e.Reason),
			RefType:   e.RefType,
			RefID:     e.RefID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// RewardResponseDTO answers every reward call. Issued is false when the call
// was a repeat and nothing changed.
type RewardResponseDTO struct {
	Issued  bool  `json:"issued" example:"true"`
	Points  int64 `json:"points" example:"10"`
	Balance int64 `json:"balance" example:"1260"`
}

type DonateRequestDTO struct {
	ReportID int    `json:"report_id" validate:"required,gt=0" example:"12"`
	Amount   string `json:"amount" validate:"required,max=20" example:"25.50"`
}

type AdjustRequestDTO struct {
	UserID int    `json:"user_id" validate:"required,gt=0" example:"7"`
	Delta  int64  `json:"delta" validate:"required,ne=0" example:"-50"`
	Note   string `json:"note" validate:"max=500" example:"duplicate sign-in refund"`
}
