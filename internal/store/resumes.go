package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
)

type gormResumes struct {
	db *gorm.DB
}

func (s *gormResumes) List(ctx context.Context) ([]domain.Resume, error) {
	var recs []database.Resume
	if err := s.db.WithContext(ctx).
		Order("upload_date DESC").
		Limit(listLimit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	resumes := make([]domain.Resume, 0, len(recs))
	for _, rec := range recs {
		resumes = append(resumes, domain.ResumeFromRecord(rec))
	}
	return resumes, nil
}

func (s *gormResumes) Get(ctx context.Context, id uint) (domain.Resume, error) {
	var rec database.Resume
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.Resume{}, translateGormError(err)
	}
	return domain.ResumeFromRecord(rec), nil
}

// Create stores an uploaded resume. The first resume in the collection
// becomes the default automatically.
func (s *gormResumes) Create(ctx context.Context, resume domain.Resume) (domain.Resume, error) {
	rec := domain.ResumeToRecord(resume)
	rec.ID = 0
	if rec.UploadDate.IsZero() {
		rec.UploadDate = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.Resume{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count resumes: %w", err)
		}
		if count == 0 {
			rec.IsDefault = true
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("create resume: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Resume{}, err
	}
	return domain.ResumeFromRecord(rec), nil
}

// Delete removes a resume without touching applications that referenced
// it; their stored resume label is a text snapshot.
func (s *gormResumes) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&database.Resume{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefault moves the default flag to the given resume inside one
// transaction, so a failure partway cannot leave zero or multiple
// defaults behind.
func (s *gormResumes) SetDefault(ctx context.Context, id uint) ([]domain.Resume, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&database.Resume{}).
			Where("id = ?", id).
			UpdateColumn("is_default", true)
		if res.Error != nil {
			return fmt.Errorf("set default resume: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&database.Resume{}).
			Where("id <> ?", id).
			UpdateColumn("is_default", false).Error; err != nil {
			return fmt.Errorf("clear default resumes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}
