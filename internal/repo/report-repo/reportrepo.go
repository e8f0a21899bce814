package reportrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const reportColumns = `id, reporter_id,
	COALESCE(phylum, ''), COALESCE(class_name, ''), COALESCE(order_name, ''), COALESCE(family, ''), COALESCE(genus, ''),
	title, species_name, description, location_text, photo_paths, status,
	COALESCE(review_note, ''), reviewed_by, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanReport(row pgx.Row) (*domain.SpeciesReport, error) {
	var (
		r      domain.SpeciesReport
		status string
	)
	err := row.Scan(
		&r.ID, &r.ReporterID,
		&r.Taxonomy.Phylum, &r.Taxonomy.ClassName, &r.Taxonomy.OrderName, &r.Taxonomy.Family, &r.Taxonomy.Genus,
		&r.Title, &r.SpeciesName, &r.Description, &r.LocationText, &r.PhotoPaths, &status,
		&r.ReviewNote, &r.ReviewedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if r.Status, err = domain.ParseReportStatus(status); err != nil {
		return nil, err
	}
	if r.PhotoPaths == nil {
		r.PhotoPaths = []string{}
	}
	return &r, nil
}

func (r *Repository) queryReports(ctx context.Context, op, query string, args ...any) ([]domain.SpeciesReport, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query reports", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	reports := make([]domain.SpeciesReport, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			zap.L().Error("can't scan report row", zap.String("op", op), zap.Error(err))
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func (r *Repository) findOne(ctx context.Context, query string, id int) (*domain.SpeciesReport, error) {
	rep, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find report", zap.Int("reportID", id), zap.Error(err))
		return nil, err
	}
	return rep, nil
}

func (r *Repository) Create(ctx context.Context, rep *domain.SpeciesReport) (int, error) {
	query := `
		INSERT INTO species_reports (reporter_id, phylum, class_name, order_name, family, genus,
			title, species_name, description, location_text, photo_paths, status)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			$7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	t := rep.Taxonomy
	err := r.db.QueryRow(ctx, query,
		rep.ReporterID, t.Phylum, t.ClassName, t.OrderName, t.Family, t.Genus,
		rep.Title, rep.SpeciesName, rep.Description, rep.LocationText, rep.PhotoPaths, string(rep.Status),
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save report", zap.Int("reporterID", rep.ReporterID), zap.Error(err))
		return 0, err
	}
	return rep.ID, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.SpeciesReport, error) {
	return r.findOne(ctx, `SELECT `+reportColumns+` FROM species_reports WHERE id = $1`, id)
}

// FindForUpdate must run inside a transaction; the row stays locked until it ends.
func (r *Repository) FindForUpdate(ctx context.Context, id int) (*domain.SpeciesReport, error) {
	return r.findOne(ctx, `SELECT `+reportColumns+` FROM species_reports WHERE id = $1 FOR UPDATE`, id)
}

// FindManyForUpdate locks in id order so concurrent batches can't deadlock.
func (r *Repository) FindManyForUpdate(ctx context.Context, ids []int) ([]domain.SpeciesReport, error) {
	query := `SELECT ` + reportColumns + ` FROM species_reports WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	return r.queryReports(ctx, "find many for update", query, ids)
}

// UpdateStatus writes a review outcome. A nil reviewer or note stores NULL.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status domain.ReportStatus, reviewedBy *int, note *string) error {
	query := `
		UPDATE species_reports
		SET status = $1, reviewed_by = $2, review_note = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, string(status), reviewedBy, note, id)
	if err != nil {
		zap.L().Error("can't update report status", zap.Int("reportID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, rep *domain.SpeciesReport) error {
	query := `
		UPDATE species_reports
		SET title = $1, species_name = $2, description = $3, location_text = $4, photo_paths = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, rep.Title, rep.SpeciesName, rep.Description, rep.LocationText, rep.PhotoPaths, rep.ID)
	if err != nil {
		zap.L().Error("can't update report", zap.Int("reportID", rep.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM species_reports WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("can't delete report", zap.Int("reportID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search lists approved reports. With a query, matches are ranked by where
// the text occurs (title 3, species name 2, description 1), newest first
// within a rank.
func (r *Repository) Search(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.SpeciesReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM species_reports
		WHERE status = 'approved'
			AND ($1 = '' OR title ILIKE $1 OR species_name ILIKE $1 OR description ILIKE $1)
			AND ($2 = '' OR phylum = $2)
			AND ($3 = '' OR class_name = $3)
			AND ($4 = '' OR order_name = $4)
			AND ($5 = '' OR family = $5)
			AND ($6 = '' OR genus = $6)
		ORDER BY
			(CASE WHEN $1 <> '' AND title ILIKE $1 THEN 3 ELSE 0 END
			+ CASE WHEN $1 <> '' AND species_name ILIKE $1 THEN 2 ELSE 0 END
			+ CASE WHEN $1 <> '' AND description ILIKE $1 THEN 1 ELSE 0 END) DESC,
			created_at DESC
		LIMIT $7
	`
	t := filter.Taxonomy
	return r.queryReports(ctx, "search", query,
		likePattern(filter.Query), t.Phylum, t.ClassName, t.OrderName, t.Family, t.Genus, limit)
}

func (r *Repository) ListByReporter(ctx context.Context, reporterID int) ([]domain.SpeciesReport, error) {
	query := `SELECT ` + reportColumns + ` FROM species_reports WHERE reporter_id = $1 ORDER BY created_at DESC`
	return r.queryReports(ctx, "list by reporter", query, reporterID)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.SpeciesReport, error) {
	query := `SELECT ` + reportColumns + ` FROM species_reports WHERE status = $1 ORDER BY created_at DESC`
	return r.queryReports(ctx, "list by status", query, string(status))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(q) + "%"
}
