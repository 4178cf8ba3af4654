package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
	"careerhub/internal/filter"
)

const listLimit = 100

type gormJobs struct {
	db *gorm.DB
}

// List pushes the simple predicates down to the database, then normalizes
// and runs the full criteria set through the predicate engine so the query
// pushdown can never drift from the in-memory semantics.
func (s *gormJobs) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	q := s.db.WithContext(ctx).Model(&database.Job{})
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", containsPattern(f.Title))
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", containsPattern(f.Location))
	}
	if len(f.Industries) > 0 {
		q = q.Where("industry IN ?", f.Industries)
	}

	var recs []database.Job
	if err := q.Order("posted_date DESC").Limit(listLimit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]domain.Job, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, domain.JobFromRecord(rec))
	}
	return filter.Apply(jobs, f.Criteria()...), nil
}

func (s *gormJobs) Get(ctx context.Context, id uint) (domain.Job, error) {
	var rec database.Job
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.Job{}, translateGormError(err)
	}
	return domain.JobFromRecord(rec), nil
}

func (s *gormJobs) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	rec := domain.JobToRecord(job)
	rec.ID = 0
	if rec.PostedDate.IsZero() {
		rec.PostedDate = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	return domain.JobFromRecord(rec), nil
}

func (s *gormJobs) Update(ctx context.Context, id uint, patch domain.JobPatch) (domain.Job, error) {
	var updated domain.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec database.Job
		if err := tx.First(&rec, id).Error; err != nil {
			return translateGormError(err)
		}
		applyJobPatch(&rec, patch)
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("save job: %w", err)
		}
		updated = domain.JobFromRecord(rec)
		return nil
	})
	if err != nil {
		return domain.Job{}, err
	}
	return updated, nil
}

func (s *gormJobs) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&database.Job{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// containsPattern builds a portable case-insensitive LIKE pattern.
func containsPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
