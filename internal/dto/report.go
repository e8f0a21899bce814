package dto

import (
	"time"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

// PhotoDTO carries the stored path, which admin edits refer to, next to the
// public URL.
type PhotoDTO struct {
	Path string `json:"path" example:"uploads/2024/05/0b5c4a2e.jpg"`
	URL  string `json:"url" example:"/media/uploads/2024/05/0b5c4a2e.jpg"`
}

type ReportDTO struct {
	ID           int             `json:"id" example:"12"`
	ReporterID   int             `json:"reporter_id" example:"7"`
	Taxonomy     domain.Taxonomy `json:"taxonomy"`
	Title        string          `json:"title" example:"Komodo dragon on the beach"`
	SpeciesName  string          `json:"species_name" example:"Varanus komodoensis"`
	Description  string          `json:"description" example:"Adult basking near the ranger station"`
	LocationText string          `json:"location_text" example:"Rinca island"`
	Photos       []PhotoDTO      `json:"photos"`
	Status       string          `json:"status" example:"pending"`
	ReviewNote   string          `json:"review_note,omitempty" example:"Great shot"`
	ReviewedBy   *int            `json:"reviewed_by,omitempty" example:"1"`
	CreatedAt    time.Time       `json:"created_at" example:"2024-05-10T09:00:00Z"`
	UpdatedAt    time.Time       `json:"updated_at" example:"2024-05-10T09:00:00Z"`
}

// NewReportDTO turns stored photo paths into public URLs with urlFor.
func NewReportDTO(r *domain.SpeciesReport, urlFor func(string) string) ReportDTO {
	photos := make([]PhotoDTO, 0, len(r.PhotoPaths))
	for _, p := range r.PhotoPaths {
		photos = append(photos, PhotoDTO{Path: p, URL: urlFor(p)})
	}
	return ReportDTO{
		ID:           r.ID,
		ReporterID:   r.ReporterID,
		Taxonomy:     r.Taxonomy,
		Title:        r.Title,
		SpeciesName:  r.SpeciesName,
		Description:  r.Description,
		LocationText: r.LocationText,
		Photos:       photos,
		Status:       string(r.Status),
		ReviewNote:   r.ReviewNote,
		ReviewedBy:   r.ReviewedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewReportsDTO(reports []domain.SpeciesReport, urlFor func(string) string) []ReportDTO {
	out := make([]ReportDTO, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportDTO(&reports[i], urlFor))
	}
	return out
}

type QueueResponseDTO struct {
	Status  string      `json:"status" example:"pending"`
	Reports []ReportDTO `json:"reports"`
}

type ReviewRequestDTO struct {
	Action string `json:"action" validate:"required,oneof=approve reject revoke restore pending delete" example:"approve"`
	Note   string `json:"note" validate:"max=1000" example:"Clear photo, species confirmed"`
}

type BatchReviewRequestDTO struct {
	Action string `json:"action" validate:"required,oneof=approve reject revoke restore pending delete" example:"reject"`
	IDs    []int  `json:"ids" validate:"required,min=1,max=200" example:"3,4,5"`
	Note   string `json:"note" validate:"max=1000" example:"Out of focus"`
}

type DeleteResponseDTO struct {
	Message string `json:"message" example:"Report deleted"`
	ID      int    `json:"id" example:"12"`
}
