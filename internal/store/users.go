package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
)

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var rec database.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		return domain.User{}, translateGormError(err)
	}
	return userFromRecord(rec), nil
}

func (s *gormUsers) GetByID(ctx context.Context, id uint) (domain.User, error) {
	var rec database.User
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return domain.User{}, translateGormError(err)
	}
	return userFromRecord(rec), nil
}

func (s *gormUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	rec := database.User{Username: user.Username, PasswordHash: user.PasswordHash}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return userFromRecord(rec), nil
}

func userFromRecord(rec database.User) domain.User {
	return domain.User{ID: rec.ID, Username: rec.Username, PasswordHash: rec.PasswordHash}
}

type memUsers struct{ st *memState }

func (s *memUsers) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.User{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	for _, rec := range s.st.users {
		if rec.Username == username {
			return userFromRecord(rec), nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (s *memUsers) GetByID(ctx context.Context, id uint) (domain.User, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.User{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.users, userID, id)
	if i < 0 {
		return domain.User{}, ErrNotFound
	}
	return userFromRecord(s.st.users[i]), nil
}

func (s *memUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.User{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := database.User{Username: user.Username, PasswordHash: user.PasswordHash}
	rec.ID = s.st.next(&s.st.userSeq, maxID(s.st.users, userID))
	s.st.users = append(s.st.users, rec)
	return userFromRecord(rec), nil
}

func userID(r database.User) uint { return r.ID }
