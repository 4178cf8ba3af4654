package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
	"careerhub/internal/filter"
)

type gormQuestions struct {
	db *gorm.DB
}

func (s *gormQuestions) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	q := s.db.WithContext(ctx).Model(&database.InterviewQuestion{})
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Difficulty != "" && f.Difficulty != "all" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}

	var recs []database.InterviewQuestion
	if err := q.Order("created_at DESC").Limit(listLimit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	questions := make([]domain.Question, 0, len(recs))
	for _, rec := range recs {
		questions = append(questions, domain.QuestionFromRecord(rec))
	}
	return filter.Apply(questions, f.Criteria()...), nil
}

func (s *gormQuestions) Get(ctx context.Context, id uint) (domain.Question, error) {
	var rec database.InterviewQuestion
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.Question{}, translateGormError(err)
	}
	return domain.QuestionFromRecord(rec), nil
}

func (s *gormQuestions) Create(ctx context.Context, question domain.Question) (domain.Question, error) {
	rec := domain.QuestionToRecord(question)
	rec.ID = 0
	rec.CreatedAt = time.Time{}
	rec.UpdatedAt = time.Time{}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return domain.QuestionFromRecord(rec), nil
}
