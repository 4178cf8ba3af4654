// Package store holds the entity repositories. Handlers depend on the
// interfaces only; the backing implementation is either the GORM/Postgres
// store or the in-memory fallback, injected at startup.
package store

import (
	"context"
	"errors"

	"careerhub/internal/domain"
)

var (
	// ErrNotFound marks an operation against an identifier absent from
	// the collection.
	ErrNotFound = errors.New("record not found")

	// ErrNotWithdrawable marks a withdrawal attempt on an application
	// that has already progressed past Applied.
	ErrNotWithdrawable = errors.New("application is no longer withdrawable")

	// ErrInvalidTransition marks a status change the review pipeline does
	// not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Jobs provides access to the job listing collection.
type Jobs interface {
	List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error)
	Get(ctx context.Context, id uint) (domain.Job, error)
	Create(ctx context.Context, job domain.Job) (domain.Job, error)
	Update(ctx context.Context, id uint, patch domain.JobPatch) (domain.Job, error)
	Delete(ctx context.Context, id uint) error
}

// Applications provides access to the application collection. List skips
// applications whose job reference dangles; Delete is the withdraw
// operation and only succeeds while the status is still Applied.
type Applications interface {
	List(ctx context.Context) ([]domain.Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]domain.Application, error)
	Get(ctx context.Context, id uint) (domain.Application, error)
	Create(ctx context.Context, app domain.Application) (domain.Application, error)
	Update(ctx context.Context, id uint, patch domain.ApplicationPatch) (domain.Application, error)
	Delete(ctx context.Context, id uint) error
}

// Alerts provides access to the saved job alert collection.
type Alerts interface {
	List(ctx context.Context) ([]domain.Alert, error)
	Get(ctx context.Context, id uint) (domain.Alert, error)
	Create(ctx context.Context, alert domain.Alert) (domain.Alert, error)
	Update(ctx context.Context, id uint, patch domain.AlertPatch) (domain.Alert, error)
	Delete(ctx context.Context, id uint) error
	ToggleActive(ctx context.Context, id uint) (domain.Alert, error)
}

// Resumes provides access to the resume collection. SetDefault moves the
// default flag to the given resume as one logical unit and returns the
// refreshed collection.
type Resumes interface {
	List(ctx context.Context) ([]domain.Resume, error)
	Get(ctx context.Context, id uint) (domain.Resume, error)
	Create(ctx context.Context, resume domain.Resume) (domain.Resume, error)
	Delete(ctx context.Context, id uint) error
	SetDefault(ctx context.Context, id uint) ([]domain.Resume, error)
}

// Questions provides access to the interview question catalog. Create is
// the seed/administrative path; the served flows are read-only.
type Questions interface {
	List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error)
	Get(ctx context.Context, id uint) (domain.Question, error)
	Create(ctx context.Context, q domain.Question) (domain.Question, error)
}

// Users provides account lookup for the auth handlers.
type Users interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByID(ctx context.Context, id uint) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

// Store bundles one repository per collection.
type Store struct {
	Jobs         Jobs
	Applications Applications
	Alerts       Alerts
	Resumes      Resumes
	Questions    Questions
	Users        Users
}
