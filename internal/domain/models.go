package domain

import "time"

type User struct {
	ID            int       `db:"id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	DisplayName   string    `db:"display_name"`
	IsAdmin       bool      `db:"is_admin"`
	Bio           string    `db:"bio"`
	City          string    `db:"city"`
	PublicProfile bool      `db:"public_profile"`
	CreatedAt     time.Time `db:"created_at"`
}

// LedgerEntry is an immutable signed point movement. A user's balance is the
// sum of the deltas of all their entries.
type LedgerEntry struct {
	ID        int64        `db:"id"`
	UserID    int          `db:"user_id"`
	Delta     int64        `db:"delta"`
	Reason    LedgerReason `db:"reason"`
	RefType   string       `db:"ref_type"`
	RefID     int          `db:"ref_id"`
	Note      string       `db:"note"`
	CreatedAt time.Time    `db:"created_at"`
}

type Taxonomy struct {
	Phylum    string `json:"phylum,omitempty"`
	ClassName string `json:"class_name,omitempty"`
	OrderName string `json:"order_name,omitempty"`
	Family    string `json:"family,omitempty"`
	Genus     string `json:"genus,omitempty"`
}

func (t Taxonomy) IsEmpty() bool {
	return t == Taxonomy{}
}

type SpeciesReport struct {
	ID           int          `db:"id"`
	ReporterID   int          `db:"reporter_id"`
	Taxonomy     Taxonomy     `db:"-"`
	Title        string       `db:"title"`
	SpeciesName  string       `db:"species_name"`
	Description  string       `db:"description"`
	LocationText string       `db:"location_text"`
	PhotoPaths   []string     `db:"photo_paths"`
	Status       ReportStatus `db:"status"`
	ReviewNote   string       `db:"review_note"`
	ReviewedBy   *int         `db:"reviewed_by"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// VisibleTo reports whether the viewer may read the report. A nil viewer is
// anonymous.
func (r *SpeciesReport) VisibleTo(viewer *Viewer) bool {
	if r.Status == ReportApproved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || viewer.UserID == r.ReporterID
}

type Viewer struct {
	UserID  int
	IsAdmin bool
}

type ReportFilter struct {
	Query    string
	Taxonomy Taxonomy
}

type Donation struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	ReportID    *int      `db:"report_id"`
	SpeciesName string    `db:"species_name"`
	AmountCents int64     `db:"amount_cents"`
	Currency    string    `db:"currency"`
	Provider    string    `db:"provider"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

type DailySignin struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Date      time.Time `db:"date"`
	Points    int64     `db:"points"`
	CreatedAt time.Time `db:"created_at"`
}

type QuestLog struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Code      QuestCode `db:"code"`
	Date      time.Time `db:"date"`
	Progress  int       `db:"progress"`
	Completed bool      `db:"completed"`
	Rewarded  bool      `db:"rewarded"`
	CreatedAt time.Time `db:"created_at"`
}

type ShopItem struct {
	ID          int        `db:"id"`
	Kind        ItemKind   `db:"kind"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	PointsCost  int64      `db:"points_cost"`
	Stock       *int       `db:"stock"`
	MediaURL    string     `db:"media_url"`
	Status      ItemStatus `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
}

// InStock is true for unlimited items and for bounded items with stock left.
func (i *ShopItem) InStock() bool {
	return i.Stock == nil || *i.Stock > 0
}

type Redemption struct {
	ID           int              `db:"id"`
	UserID       int              `db:"user_id"`
	ItemID       int              `db:"item_id"`
	ItemTitle    string           `db:"-"`
	PointsCost   int64            `db:"points_cost"`
	Status       RedemptionStatus `db:"status"`
	ShippingText string           `db:"shipping_text"`
	CreatedAt    time.Time        `db:"created_at"`
}

// Counters are the per-user daily action counters that drive quest progress.
type Counters struct {
	Date    string `json:"date"`
	Views   int    `json:"views"`
	Shares  int    `json:"shares"`
	Reports int    `json:"reports"`
}

func (c Counters) Get(kind CounterKind) int {
	switch kind {
	case CounterViews:
		return c.Views
	case CounterShares:
		return c.Shares
	case CounterReports:
		return c.Reports
	}
	return 0
}

// DateKey formats t as the UTC calendar day used for daily idempotency keys.
func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProfileStats is the activity summary shown on a user's profile.
type ProfileStats struct {
	TotalReports    int   `json:"total_reports"`
	ApprovedReports int   `json:"approved_reports"`
	DonatedCents    int64 `json:"donated_cents"`
	Points          int64 `json:"points"`
}
