package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
)

type gormAlerts struct {
	db *gorm.DB
}

func (s *gormAlerts) List(ctx context.Context) ([]domain.Alert, error) {
	var recs []database.JobAlert
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	alerts := make([]domain.Alert, 0, len(recs))
	for _, rec := range recs {
		alerts = append(alerts, domain.AlertFromRecord(rec))
	}
	return alerts, nil
}

func (s *gormAlerts) Get(ctx context.Context, id uint) (domain.Alert, error) {
	var rec database.JobAlert
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.Alert{}, translateGormError(err)
	}
	return domain.AlertFromRecord(rec), nil
}

func (s *gormAlerts) Create(ctx context.Context, alert domain.Alert) (domain.Alert, error) {
	if err := domain.ValidateAlert(alert); err != nil {
		return domain.Alert{}, err
	}
	rec := domain.AlertToRecord(alert)
	rec.ID = 0
	if rec.Frequency == "" {
		rec.Frequency = "daily"
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	return domain.AlertFromRecord(rec), nil
}

func (s *gormAlerts) Update(ctx context.Context, id uint, patch domain.AlertPatch) (domain.Alert, error) {
	var updated domain.Alert
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec database.JobAlert
		if err := tx.First(&rec, id).Error; err != nil {
			return translateGormError(err)
		}
		if err := applyAlertPatch(&rec, patch); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("save alert: %w", err)
		}
		updated = domain.AlertFromRecord(rec)
		return nil
	})
	if err != nil {
		return domain.Alert{}, err
	}
	return updated, nil
}

func (s *gormAlerts) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&database.JobAlert{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the active flag with a single store-issued update, so
// two racing toggles cannot read the same stale value.
func (s *gormAlerts) ToggleActive(ctx context.Context, id uint) (domain.Alert, error) {
	res := s.db.WithContext(ctx).
		Model(&database.JobAlert{}).
		Where("id = ?", id).
		UpdateColumn("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return domain.Alert{}, fmt.Errorf("toggle alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Alert{}, ErrNotFound
	}
	return s.Get(ctx, id)
}
