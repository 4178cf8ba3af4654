package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
)

type gormApplications struct {
	db     *gorm.DB
	logger *slog.Logger
}

// List returns every application whose job still exists, newest first.
// Applications referencing a deleted job are dropped from the listing;
// each omission is logged so the data-integrity gap stays visible.
func (s *gormApplications) List(ctx context.Context) ([]domain.Application, error) {
	var recs []database.Application
	if err := s.db.WithContext(ctx).
		Order("applied_date DESC").
		Limit(listLimit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return s.dropDangling(ctx, recs)
}

func (s *gormApplications) ListByJob(ctx context.Context, jobID uint) ([]domain.Application, error) {
	var recs []database.Application
	if err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_date DESC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	return s.dropDangling(ctx, recs)
}

func (s *gormApplications) dropDangling(ctx context.Context, recs []database.Application) ([]domain.Application, error) {
	jobIDs := make([]uint, 0, len(recs))
	for _, rec := range recs {
		jobIDs = append(jobIDs, rec.JobID)
	}

	existing := map[uint]bool{}
	if len(jobIDs) > 0 {
		var found []uint
		if err := s.db.WithContext(ctx).
			Model(&database.Job{}).
			Where("id IN ?", jobIDs).
			Pluck("id", &found).Error; err != nil {
			return nil, fmt.Errorf("resolve job references: %w", err)
		}
		for _, id := range found {
			existing[id] = true
		}
	}

	apps := make([]domain.Application, 0, len(recs))
	for _, rec := range recs {
		if !existing[rec.JobID] {
			s.logger.Warn("skipping application with dangling job reference",
				slog.Uint64("application_id", uint64(rec.ID)),
				slog.Uint64("job_id", uint64(rec.JobID)),
			)
			continue
		}
		apps = append(apps, domain.ApplicationFromRecord(rec))
	}
	return apps, nil
}

func (s *gormApplications) Get(ctx context.Context, id uint) (domain.Application, error) {
	var rec database.Application
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.Application{}, translateGormError(err)
	}
	return domain.ApplicationFromRecord(rec), nil
}

// Create stores a new application. The status always starts Applied and
// the applied date is stamped at creation; both are immutable to callers.
func (s *gormApplications) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	rec := domain.ApplicationToRecord(app)
	rec.ID = 0
	rec.Status = string(domain.StatusApplied)
	rec.AppliedDate = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}
	return domain.ApplicationFromRecord(rec), nil
}

func (s *gormApplications) Update(ctx context.Context, id uint, patch domain.ApplicationPatch) (domain.Application, error) {
	var updated domain.Application
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec database.Application
		if err := tx.First(&rec, id).Error; err != nil {
			return translateGormError(err)
		}
		if err := applyApplicationPatch(&rec, patch); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		updated = domain.ApplicationFromRecord(rec)
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}
	return updated, nil
}

// Delete withdraws an application. Withdrawal is only permitted while the
// status is still Applied; the guard lives here so it holds for every
// caller, not just the UI.
func (s *gormApplications) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec database.Application
		if err := tx.First(&rec, id).Error; err != nil {
			return translateGormError(err)
		}
		if domain.ParseStatus(rec.Status) != domain.StatusApplied {
			return ErrNotWithdrawable
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return fmt.Errorf("delete application: %w", err)
		}
		return nil
	})
}
