package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"careerhub/internal/database"
	"careerhub/internal/domain"
	"careerhub/internal/filter"
)

// NewMemory builds the standalone fallback store: process-local record
// slices guarded by one mutex, with an optional artificial latency applied
// to every call to mimic the hosted store. Identifiers are assigned as one
// greater than the collection's current maximum and are never reused
// within the process.
func NewMemory(delay time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	st := &memState{delay: delay, logger: logger}
	return &Store{
		Jobs:         &memJobs{st},
		Applications: &memApplications{st},
		Alerts:       &memAlerts{st},
		Resumes:      &memResumes{st},
		Questions:    &memQuestions{st},
		Users:        &memUsers{st},
	}
}

type memState struct {
	mu     sync.Mutex
	delay  time.Duration
	logger *slog.Logger

	jobs      []database.Job
	apps      []database.Application
	alerts    []database.JobAlert
	resumes   []database.Resume
	questions []database.InterviewQuestion
	users     []database.User

	// high-water marks so deleted identifiers are never reissued
	jobSeq, appSeq, alertSeq, resumeSeq, questionSeq, userSeq uint
}

func (st *memState) wait(ctx context.Context) error {
	if st.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(st.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (st *memState) next(seq *uint, current uint) uint {
	if current > *seq {
		*seq = current
	}
	*seq++
	return *seq
}

func indexByID[R any](items []R, id func(R) uint, want uint) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func maxID[R any](items []R, id func(R) uint) uint {
	var m uint
	for _, item := range items {
		if id(item) > m {
			m = id(item)
		}
	}
	return m
}

// newestFirst copies items sorted descending by the given timestamp; ties
// keep insertion order. Listings run the result through capList so both
// backends serve the same window.
func newestFirst[R any](items []R, at func(R) time.Time) []R {
	out := make([]R, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	return out
}

func capList[R any](items []R) []R {
	if len(items) > listLimit {
		return items[:listLimit]
	}
	return items
}

type memJobs struct{ st *memState }

func (s *memJobs) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	recs := newestFirst(s.st.jobs, jobPostedAt)
	jobs := make([]domain.Job, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, domain.JobFromRecord(rec))
	}
	return capList(filter.Apply(jobs, f.Criteria()...)), nil
}

func (s *memJobs) Get(ctx context.Context, id uint) (domain.Job, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Job{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.jobs, jobID, id)
	if i < 0 {
		return domain.Job{}, ErrNotFound
	}
	return domain.JobFromRecord(s.st.jobs[i]), nil
}

func (s *memJobs) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Job{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := domain.JobToRecord(job)
	rec.ID = s.st.next(&s.st.jobSeq, maxID(s.st.jobs, jobID))
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.PostedDate.IsZero() {
		rec.PostedDate = now
	}
	s.st.jobs = append(s.st.jobs, rec)
	return domain.JobFromRecord(rec), nil
}

func (s *memJobs) Update(ctx context.Context, id uint, patch domain.JobPatch) (domain.Job, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Job{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.jobs, jobID, id)
	if i < 0 {
		return domain.Job{}, ErrNotFound
	}
	rec := s.st.jobs[i]
	applyJobPatch(&rec, patch)
	rec.UpdatedAt = time.Now().UTC()
	s.st.jobs[i] = rec
	return domain.JobFromRecord(rec), nil
}

func (s *memJobs) Delete(ctx context.Context, id uint) error {
	if err := s.st.wait(ctx); err != nil {
		return err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.jobs, jobID, id)
	if i < 0 {
		return ErrNotFound
	}
	s.st.jobs = append(s.st.jobs[:i], s.st.jobs[i+1:]...)
	return nil
}

type memApplications struct{ st *memState }

func (s *memApplications) List(ctx context.Context) ([]domain.Application, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.collect(capList(newestFirst(s.st.apps, appAppliedAt))), nil
}

func (s *memApplications) ListByJob(ctx context.Context, jobID uint) ([]domain.Application, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	matched := make([]database.Application, 0, len(s.st.apps))
	for _, rec := range s.st.apps {
		if rec.JobID == jobID {
			matched = append(matched, rec)
		}
	}
	return s.collect(newestFirst(matched, appAppliedAt)), nil
}

// collect converts under the held lock, dropping applications whose job no
// longer exists. Each omission is logged, same as the GORM store.
func (s *memApplications) collect(recs []database.Application) []domain.Application {
	existing := map[uint]bool{}
	for _, job := range s.st.jobs {
		existing[job.ID] = true
	}
	apps := make([]domain.Application, 0, len(recs))
	for _, rec := range recs {
		if !existing[rec.JobID] {
			s.st.logger.Warn("skipping application with dangling job reference",
				slog.Uint64("application_id", uint64(rec.ID)),
				slog.Uint64("job_id", uint64(rec.JobID)),
			)
			continue
		}
		apps = append(apps, domain.ApplicationFromRecord(rec))
	}
	return apps
}

func (s *memApplications) Get(ctx context.Context, id uint) (domain.Application, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Application{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.apps, appID, id)
	if i < 0 {
		return domain.Application{}, ErrNotFound
	}
	return domain.ApplicationFromRecord(s.st.apps[i]), nil
}

func (s *memApplications) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Application{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := domain.ApplicationToRecord(app)
	rec.ID = s.st.next(&s.st.appSeq, maxID(s.st.apps, appID))
	rec.Status = string(domain.StatusApplied)
	rec.AppliedDate = time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = rec.AppliedDate, rec.AppliedDate
	s.st.apps = append(s.st.apps, rec)
	return domain.ApplicationFromRecord(rec), nil
}

func (s *memApplications) Update(ctx context.Context, id uint, patch domain.ApplicationPatch) (domain.Application, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Application{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.apps, appID, id)
	if i < 0 {
		return domain.Application{}, ErrNotFound
	}
	rec := s.st.apps[i]
	if err := applyApplicationPatch(&rec, patch); err != nil {
		return domain.Application{}, err
	}
	rec.UpdatedAt = time.Now().UTC()
	s.st.apps[i] = rec
	return domain.ApplicationFromRecord(rec), nil
}

func (s *memApplications) Delete(ctx context.Context, id uint) error {
	if err := s.st.wait(ctx); err != nil {
		return err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.apps, appID, id)
	if i < 0 {
		return ErrNotFound
	}
	if domain.ParseStatus(s.st.apps[i].Status) != domain.StatusApplied {
		return ErrNotWithdrawable
	}
	s.st.apps = append(s.st.apps[:i], s.st.apps[i+1:]...)
	return nil
}

type memAlerts struct{ st *memState }

func (s *memAlerts) List(ctx context.Context) ([]domain.Alert, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	recs := capList(newestFirst(s.st.alerts, alertCreatedAt))
	alerts := make([]domain.Alert, 0, len(recs))
	for _, rec := range recs {
		alerts = append(alerts, domain.AlertFromRecord(rec))
	}
	return alerts, nil
}

func (s *memAlerts) Get(ctx context.Context, id uint) (domain.Alert, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Alert{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.alerts, alertID, id)
	if i < 0 {
		return domain.Alert{}, ErrNotFound
	}
	return domain.AlertFromRecord(s.st.alerts[i]), nil
}

func (s *memAlerts) Create(ctx context.Context, alert domain.Alert) (domain.Alert, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Alert{}, err
	}
	if err := domain.ValidateAlert(alert); err != nil {
		return domain.Alert{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := domain.AlertToRecord(alert)
	rec.ID = s.st.next(&s.st.alertSeq, maxID(s.st.alerts, alertID))
	if rec.Frequency == "" {
		rec.Frequency = "daily"
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.st.alerts = append(s.st.alerts, rec)
	return domain.AlertFromRecord(rec), nil
}

func (s *memAlerts) Update(ctx context.Context, id uint, patch domain.AlertPatch) (domain.Alert, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Alert{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.alerts, alertID, id)
	if i < 0 {
		return domain.Alert{}, ErrNotFound
	}
	rec := s.st.alerts[i]
	if err := applyAlertPatch(&rec, patch); err != nil {
		return domain.Alert{}, err
	}
	rec.UpdatedAt = time.Now().UTC()
	s.st.alerts[i] = rec
	return domain.AlertFromRecord(rec), nil
}

func (s *memAlerts) Delete(ctx context.Context, id uint) error {
	if err := s.st.wait(ctx); err != nil {
		return err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.alerts, alertID, id)
	if i < 0 {
		return ErrNotFound
	}
	s.st.alerts = append(s.st.alerts[:i], s.st.alerts[i+1:]...)
	return nil
}

func (s *memAlerts) ToggleActive(ctx context.Context, id uint) (domain.Alert, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Alert{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.alerts, alertID, id)
	if i < 0 {
		return domain.Alert{}, ErrNotFound
	}
	s.st.alerts[i].IsActive = !s.st.alerts[i].IsActive
	s.st.alerts[i].UpdatedAt = time.Now().UTC()
	return domain.AlertFromRecord(s.st.alerts[i]), nil
}

type memResumes struct{ st *memState }

func (s *memResumes) List(ctx context.Context) ([]domain.Resume, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.snapshot(), nil
}

func (s *memResumes) snapshot() []domain.Resume {
	recs := capList(newestFirst(s.st.resumes, resumeUploadedAt))
	resumes := make([]domain.Resume, 0, len(recs))
	for _, rec := range recs {
		resumes = append(resumes, domain.ResumeFromRecord(rec))
	}
	return resumes
}

func (s *memResumes) Get(ctx context.Context, id uint) (domain.Resume, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Resume{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.resumes, resumeID, id)
	if i < 0 {
		return domain.Resume{}, ErrNotFound
	}
	return domain.ResumeFromRecord(s.st.resumes[i]), nil
}

func (s *memResumes) Create(ctx context.Context, resume domain.Resume) (domain.Resume, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Resume{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := domain.ResumeToRecord(resume)
	rec.ID = s.st.next(&s.st.resumeSeq, maxID(s.st.resumes, resumeID))
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.UploadDate.IsZero() {
		rec.UploadDate = now
	}
	if len(s.st.resumes) == 0 {
		rec.IsDefault = true
	}
	s.st.resumes = append(s.st.resumes, rec)
	return domain.ResumeFromRecord(rec), nil
}

func (s *memResumes) Delete(ctx context.Context, id uint) error {
	if err := s.st.wait(ctx); err != nil {
		return err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.resumes, resumeID, id)
	if i < 0 {
		return ErrNotFound
	}
	s.st.resumes = append(s.st.resumes[:i], s.st.resumes[i+1:]...)
	return nil
}

// SetDefault flips the default flag under the lock, so the at-most-one
// invariant holds even against concurrent callers.
func (s *memResumes) SetDefault(ctx context.Context, id uint) ([]domain.Resume, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if indexByID(s.st.resumes, resumeID, id) < 0 {
		return nil, ErrNotFound
	}
	for i := range s.st.resumes {
		s.st.resumes[i].IsDefault = s.st.resumes[i].ID == id
	}
	return s.snapshot(), nil
}

type memQuestions struct{ st *memState }

func (s *memQuestions) List(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	if err := s.st.wait(ctx); err != nil {
		return nil, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	recs := newestFirst(s.st.questions, questionCreatedAt)
	questions := make([]domain.Question, 0, len(recs))
	for _, rec := range recs {
		questions = append(questions, domain.QuestionFromRecord(rec))
	}
	return capList(filter.Apply(questions, f.Criteria()...)), nil
}

func (s *memQuestions) Get(ctx context.Context, id uint) (domain.Question, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Question{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	i := indexByID(s.st.questions, questionID, id)
	if i < 0 {
		return domain.Question{}, ErrNotFound
	}
	return domain.QuestionFromRecord(s.st.questions[i]), nil
}

func (s *memQuestions) Create(ctx context.Context, question domain.Question) (domain.Question, error) {
	if err := s.st.wait(ctx); err != nil {
		return domain.Question{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	rec := domain.QuestionToRecord(question)
	rec.ID = s.st.next(&s.st.questionSeq, maxID(s.st.questions, questionID))
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.st.questions = append(s.st.questions, rec)
	return domain.QuestionFromRecord(rec), nil
}

func jobID(r database.Job) uint                    { return r.ID }
func appID(r database.Application) uint            { return r.ID }
func alertID(r database.JobAlert) uint             { return r.ID }
func resumeID(r database.Resume) uint              { return r.ID }
func questionID(r database.InterviewQuestion) uint { return r.ID }

func jobPostedAt(r database.Job) time.Time                     { return r.PostedDate }
func appAppliedAt(r database.Application) time.Time            { return r.AppliedDate }
func alertCreatedAt(r database.JobAlert) time.Time             { return r.CreatedAt }
func resumeUploadedAt(r database.Resume) time.Time             { return r.UploadDate }
func questionCreatedAt(r database.InterviewQuestion) time.Time { return r.CreatedAt }
