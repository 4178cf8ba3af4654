package store

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// NewGorm builds the production store over a GORM database handle.
func NewGorm(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		Jobs:         &gormJobs{db: db},
		Applications: &gormApplications{db: db, logger: logger},
		Alerts:       &gormAlerts{db: db},
		Resumes:      &gormResumes{db: db},
		Questions:    &gormQuestions{db: db},
		Users:        &gormUsers{db: db},
	}
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
