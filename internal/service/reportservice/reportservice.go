//go:generate mockgen -source=reportservice.go -destination=mock_reportservice.go -package=reportservice
package reportservice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/metrics"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const (
	maxPhotos          = 3
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

type Repo interface {
	Create(ctx context.Context, rep *domain.SpeciesReport) (int, error)
	FindByID(ctx context.Context, id int) (*domain.SpeciesReport, error)
	FindForUpdate(ctx context.Context, id int) (*domain.SpeciesReport, error)
	FindManyForUpdate(ctx context.Context, ids []int) ([]domain.SpeciesReport, error)
	UpdateStatus(ctx context.Context, id int, status domain.ReportStatus, reviewedBy *int, note *string) error
	Update(ctx context.Context, rep *domain.SpeciesReport) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.SpeciesReport, error)
	ListByReporter(ctx context.Context, reporterID int) ([]domain.SpeciesReport, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.SpeciesReport, error)
}

type Storage interface {
	Store(ctx context.Context, data []byte, declaredMime string, filename string) (string, error)
	RemoveAll(ctx context.Context, paths []string) int
}

type Tracker interface {
	Bump(ctx context.Context, userID int, kind domain.CounterKind) bool
}

type Photo struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Content is the free-text part of a report.
type Content struct {
	Title        string
	SpeciesName  string
	Description  string
	LocationText string
}

func (c Content) normalize() (Content, error) {
	c = Content{
		Title:        strings.TrimSpace(c.Title),
		SpeciesName:  strings.TrimSpace(c.SpeciesName),
		Description:  strings.TrimSpace(c.Description),
		LocationText: strings.TrimSpace(c.LocationText),
	}
	if c.Title == "" || c.SpeciesName == "" {
		return c, fmt.Errorf("%w: title and species name are required", domain.ErrValidation)
	}
	return c, nil
}

// BatchResult lists what a batch review did to each requested id.
type BatchResult struct {
	Changed  []int `json:"changed"`
	Deleted  []int `json:"deleted"`
	Skipped  []int `json:"skipped"`
	NotFound []int `json:"not_found"`
}

type Service struct {
	repo      Repo
	storage   Storage
	tracker   Tracker
	txManager pg.TXManager
}

func New(repo Repo, storage Storage, tracker Tracker, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		storage:   storage,
		tracker:   tracker,
		txManager: txManager,
	}
}

// Create stores the photos and files a pending report. Photos already stored
// are removed again when anything after them fails.
func (s *Service) Create(ctx context.Context, reporterID int, content Content, taxonomy domain.Taxonomy, photos []Photo) (*domain.SpeciesReport, error) {
	content, err := content.normalize()
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 || len(photos) > maxPhotos {
		return nil, fmt.Errorf("%w: between 1 and %d photos are required", domain.ErrValidation, maxPhotos)
	}
	taxonomy = trimTaxonomy(taxonomy)
	if taxonomy.Phylum != "" && !domain.IsPhylumAllowed(taxonomy.Phylum) {
		return nil, fmt.Errorf("%w: %q", domain.ErrPhylumNotAllowed, taxonomy.Phylum)
	}

	paths, err := s.storePhotos(ctx, photos)
	if err != nil {
		return nil, err
	}

	rep := &domain.SpeciesReport{
		ReporterID:   reporterID,
		Taxonomy:     taxonomy,
		Title:        content.Title,
		SpeciesName:  content.SpeciesName,
		Description:  content.Description,
		LocationText: content.LocationText,
		PhotoPaths:   paths,
		Status:       domain.ReportPending,
	}
	id, err := s.repo.Create(ctx, rep)
	if err != nil {
		zap.L().Error("failed to create report", zap.Int("reporterID", reporterID), zap.Error(err))
		s.storage.RemoveAll(ctx, paths)
		return nil, err
	}
	rep.ID = id

	s.tracker.Bump(ctx, reporterID, domain.CounterReports)
	zap.L().Info("report submitted", zap.Int("reportID", id), zap.Int("reporterID", reporterID))
	return rep, nil
}

// Get returns a report the viewer may see and counts the view towards the
// viewer's quests. A nil viewer is anonymous.
func (s *Service) Get(ctx context.Context, viewer *domain.Viewer, id int) (*domain.SpeciesReport, error) {
	return s.visit(ctx, viewer, id, domain.CounterViews)
}

func (s *Service) Share(ctx context.Context, viewer *domain.Viewer, id int) (*domain.SpeciesReport, error) {
	return s.visit(ctx, viewer, id, domain.CounterShares)
}

func (s *Service) visit(ctx context.Context, viewer *domain.Viewer, id int, kind domain.CounterKind) (*domain.SpeciesReport, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("%w: report %d", domain.ErrNotFound, id)
	}
	if !rep.VisibleTo(viewer) {
		return nil, fmt.Errorf("%w: report %d", domain.ErrForbidden, id)
	}
	if viewer != nil {
		s.tracker.Bump(ctx, viewer.UserID, kind)
	}
	return rep, nil
}

// Review applies one admin action to one report under a row lock. A deleted
// report is returned as it was; its photos are removed after commit.
func (s *Service) Review(ctx context.Context, adminID, id int, action string, note string) (*domain.SpeciesReport, error) {
	act, err := domain.ParseReviewAction(action)
	if err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)

	var rep *domain.SpeciesReport
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		rep, err = s.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rep == nil {
			return fmt.Errorf("%w: report %d", domain.ErrNotFound, id)
		}
		next, err := domain.NextStatus(rep.Status, act)
		if err != nil {
			return err
		}
		if act == domain.ActionDelete {
			return s.repo.Delete(ctx, id)
		}

		reviewer := reviewerFor(act, adminID)
		var notePtr *string
		if note != "" {
			notePtr = &note
		}
		if err := s.repo.UpdateStatus(ctx, id, next, reviewer, notePtr); err != nil {
			return err
		}
		rep.Status, rep.ReviewedBy, rep.ReviewNote = next, reviewer, note
		return nil
	})
	if err != nil {
		zap.L().Warn("review failed", zap.Int("reportID", id), zap.String("action", action), zap.Error(err))
		return nil, err
	}

	if act == domain.ActionDelete {
		s.storage.RemoveAll(ctx, rep.PhotoPaths)
	}
	metrics.ReviewTransitions.WithLabelValues(string(act)).Inc()
	zap.L().Info("report reviewed", zap.Int("reportID", id), zap.Int("adminID", adminID), zap.String("action", string(act)))
	return rep, nil
}

// Batch applies one action to many reports in a single transaction. Each
// report either makes the transition or is left untouched; a blank note keeps
// the note a report already has.
func (s *Service) Batch(ctx context.Context, adminID int, action string, ids []int, note string) (*BatchResult, error) {
	act, err := domain.ParseReviewAction(action)
	if err != nil {
		return nil, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return &BatchResult{}, nil
	}
	note = strings.TrimSpace(note)

	var (
		res     *BatchResult
		removed []string
	)
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		res, removed = &BatchResult{}, nil
		reports, err := s.repo.FindManyForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		found := make(map[int]struct{}, len(reports))
		for _, rep := range reports {
			found[rep.ID] = struct{}{}
			next, err := domain.NextStatus(rep.Status, act)
			if err != nil {
				res.Skipped = append(res.Skipped, rep.ID)
				continue
			}
			if act == domain.ActionDelete {
				if err := s.repo.Delete(ctx, rep.ID); err != nil {
					return fmt.Errorf("can't delete report %d: %w", rep.ID, err)
				}
				removed = append(removed, rep.PhotoPaths...)
				res.Deleted = append(res.Deleted, rep.ID)
				continue
			}
			newNote := rep.ReviewNote
			if note != "" {
				newNote = note
			}
			var notePtr *string
			if newNote != "" {
				notePtr = &newNote
			}
			if err := s.repo.UpdateStatus(ctx, rep.ID, next, reviewerFor(act, adminID), notePtr); err != nil {
				return fmt.Errorf("can't update report %d: %w", rep.ID, err)
			}
			res.Changed = append(res.Changed, rep.ID)
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				res.NotFound = append(res.NotFound, id)
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("batch review failed", zap.String("action", action), zap.Ints("ids", ids), zap.Error(err))
		return nil, err
	}

	if len(removed) > 0 {
		s.storage.RemoveAll(ctx, removed)
	}
	metrics.ReviewTransitions.WithLabelValues(string(act)).Add(float64(len(res.Changed) + len(res.Deleted)))
	zap.L().Info("batch review applied",
		zap.Int("adminID", adminID),
		zap.String("action", string(act)),
		zap.Int("changed", len(res.Changed)),
		zap.Int("deleted", len(res.Deleted)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// Edit replaces a report's text, drops the selected photos and appends new
// ones. Dropped files are removed after commit.
func (s *Service) Edit(ctx context.Context, adminID, id int, content Content, removePhotos []string, newPhotos []Photo) (*domain.SpeciesReport, error) {
	content, err := content.normalize()
	if err != nil {
		return nil, err
	}
	if len(newPhotos) > maxPhotos {
		return nil, fmt.Errorf("%w: at most %d new photos", domain.ErrValidation, maxPhotos)
	}

	added, err := s.storePhotos(ctx, newPhotos)
	if err != nil {
		return nil, err
	}

	var (
		rep     *domain.SpeciesReport
		dropped []string
	)
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		rep, err = s.repo.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rep == nil {
			return fmt.Errorf("%w: report %d", domain.ErrNotFound, id)
		}

		drop := make(map[string]struct{}, len(removePhotos))
		for _, p := range removePhotos {
			drop[p] = struct{}{}
		}
		kept := make([]string, 0, len(rep.PhotoPaths)+len(added))
		dropped = nil
		for _, p := range rep.PhotoPaths {
			if _, ok := drop[p]; ok {
				dropped = append(dropped, p)
				continue
			}
			kept = append(kept, p)
		}
		kept = append(kept, added...)

		rep.Title = content.Title
		rep.SpeciesName = content.SpeciesName
		rep.Description = content.Description
		rep.LocationText = content.LocationText
		rep.PhotoPaths = kept
		return s.repo.Update(ctx, rep)
	})
	if err != nil {
		zap.L().Warn("report edit failed", zap.Int("reportID", id), zap.Error(err))
		if len(added) > 0 {
			s.storage.RemoveAll(ctx, added)
		}
		return nil, err
	}

	if len(dropped) > 0 {
		s.storage.RemoveAll(ctx, dropped)
	}
	zap.L().Info("report edited", zap.Int("reportID", id), zap.Int("adminID", adminID), zap.Int("photosRemoved", len(dropped)))
	return rep, nil
}

func (s *Service) Search(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.SpeciesReport, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Taxonomy = trimTaxonomy(filter.Taxonomy)
	return s.repo.Search(ctx, filter, limit)
}

func (s *Service) ListMine(ctx context.Context, userID int) ([]domain.SpeciesReport, error) {
	return s.repo.ListByReporter(ctx, userID)
}

// ListByStatus is the admin queue. An unknown status falls back to pending.
func (s *Service) ListByStatus(ctx context.Context, status string) (domain.ReportStatus, []domain.SpeciesReport, error) {
	st, err := domain.ParseReportStatus(status)
	if err != nil {
		st = domain.ReportPending
	}
	reports, err := s.repo.ListByStatus(ctx, st)
	if err != nil {
		return st, nil, err
	}
	return st, reports, nil
}

func (s *Service) storePhotos(ctx context.Context, photos []Photo) ([]string, error) {
	paths := make([]string, 0, len(photos))
	for _, p := range photos {
		rel, err := s.storage.Store(ctx, p.Data, p.ContentType, p.Filename)
		if err != nil {
			if len(paths) > 0 {
				s.storage.RemoveAll(ctx, paths)
			}
			return nil, err
		}
		paths = append(paths, rel)
	}
	return paths, nil
}

// reviewerFor records the admin on every action except restore, which puts the
// report back in the queue unreviewed.
func reviewerFor(act domain.ReviewAction, adminID int) *int {
	if act == domain.ActionRestore {
		return nil
	}
	return &adminID
}

func trimTaxonomy(t domain.Taxonomy) domain.Taxonomy {
	return domain.Taxonomy{
		Phylum:    strings.TrimSpace(t.Phylum),
		ClassName: strings.TrimSpace(t.ClassName),
		OrderName: strings.TrimSpace(t.OrderName),
		Family:    strings.TrimSpace(t.Family),
		Genus:     strings.TrimSpace(t.Genus),
	}
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id <= 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
