package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"careerhub/internal/database"
	"careerhub/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGormStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&database.User{},
		&database.Job{},
		&database.Application{},
		&database.JobAlert{},
		&database.Resume{},
		&database.InterviewQuestion{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGorm(db, quietLogger())
}

// Both store implementations must expose identical semantics; every case
// in the suite runs against each backend.
func runOnBothStores(t *testing.T, name string, fn func(t *testing.T, st *Store)) {
	t.Run(name+"/memory", func(t *testing.T) {
		fn(t, NewMemory(0, quietLogger()))
	})
	t.Run(name+"/gorm", func(t *testing.T) {
		fn(t, newGormStore(t))
	})
}

func mustCreateJob(t *testing.T, st *Store, job domain.Job) domain.Job {
	t.Helper()
	created, err := st.Jobs.Create(context.Background(), job)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return created
}

func strptr(s string) *string { return &s }

func TestJobLifecycle(t *testing.T) {
	runOnBothStores(t, "job lifecycle", func(t *testing.T, st *Store) {
		ctx := context.Background()

		created := mustCreateJob(t, st, domain.Job{
			Title:        "Backend Engineer",
			Company:      "Acme",
			Location:     "Remote",
			Industry:     "Technology",
			Salary:       domain.SalaryRange{Min: 90000, Max: 120000},
			Requirements: []string{"Go", "SQL"},
		})
		if created.ID == 0 {
			t.Fatal("created job must get an identifier")
		}
		if created.PostedDate.IsZero() {
			t.Fatal("posted date must be stamped when absent")
		}

		got, err := st.Jobs.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if got.Title != "Backend Engineer" || len(got.Requirements) != 2 {
			t.Fatalf("unexpected job %+v", got)
		}

		// partial update touches only the named fields
		updated, err := st.Jobs.Update(ctx, created.ID, domain.JobPatch{
			Title:  strptr("Staff Engineer"),
			Salary: &domain.SalaryRange{Min: 120000, Max: 160000},
		})
		if err != nil {
			t.Fatalf("update job: %v", err)
		}
		if updated.Title != "Staff Engineer" || updated.Salary.Min != 120000 {
			t.Fatalf("patch not applied: %+v", updated)
		}
		if updated.Company != "Acme" || updated.Location != "Remote" {
			t.Fatalf("untouched fields changed: %+v", updated)
		}

		if err := st.Jobs.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete job: %v", err)
		}
		if _, err := st.Jobs.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestUnknownIDsLeaveStateUnchanged(t *testing.T) {
	runOnBothStores(t, "unknown ids", func(t *testing.T, st *Store) {
		ctx := context.Background()
		mustCreateJob(t, st, domain.Job{Title: "Only Job", Industry: "Finance"})

		if _, err := st.Jobs.Update(ctx, 999, domain.JobPatch{Title: strptr("x")}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("update unknown id: expected ErrNotFound, got %v", err)
		}
		if err := st.Jobs.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete unknown id: expected ErrNotFound, got %v", err)
		}

		jobs, err := st.Jobs.List(ctx, domain.JobFilter{})
		if err != nil {
			t.Fatalf("list jobs: %v", err)
		}
		if len(jobs) != 1 || jobs[0].Title != "Only Job" {
			t.Fatalf("failed operations must not disturb the collection: %v", jobs)
		}
	})
}

func TestIdentifiersNeverReused(t *testing.T) {
	runOnBothStores(t, "id reuse", func(t *testing.T, st *Store) {
		ctx := context.Background()
		first := mustCreateJob(t, st, domain.Job{Title: "A"})
		second := mustCreateJob(t, st, domain.Job{Title: "B"})
		if second.ID <= first.ID {
			t.Fatalf("identifiers must increase: %d then %d", first.ID, second.ID)
		}

		if err := st.Jobs.Delete(ctx, second.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		third := mustCreateJob(t, st, domain.Job{Title: "C"})
		if third.ID <= second.ID {
			t.Fatalf("deleted identifier %d reissued as %d", second.ID, third.ID)
		}
	})
}

func TestJobListFiltering(t *testing.T) {
	runOnBothStores(t, "job filtering", func(t *testing.T, st *Store) {
		ctx := context.Background()
		base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		mustCreateJob(t, st, domain.Job{
			Title: "Senior Engineer", Company: "Acme", Industry: "Technology",
			Salary: domain.SalaryRange{Min: 90000, Max: 120000}, PostedDate: base,
		})
		mustCreateJob(t, st, domain.Job{
			Title: "Nurse", Company: "Lakeside", Industry: "Healthcare",
			Salary: domain.SalaryRange{Min: 70000, Max: 90000}, PostedDate: base.AddDate(0, 0, -1),
		})
		mustCreateJob(t, st, domain.Job{
			Title: "Engineering Manager", Company: "Initech", Industry: "Technology",
			PostedDate: base.AddDate(0, 0, -2),
		})

		byIndustry, err := st.Jobs.List(ctx, domain.JobFilter{Industries: []string{"Technology"}})
		if err != nil {
			t.Fatalf("list by industry: %v", err)
		}
		if len(byIndustry) != 2 || byIndustry[0].Company != "Acme" || byIndustry[1].Company != "Initech" {
			t.Fatalf("unexpected industry matches %v", byIndustry)
		}

		// the salary criterion is active, so the job without salary data
		// drops out
		bySalary, err := st.Jobs.List(ctx, domain.JobFilter{
			Industries: []string{"Technology"},
			SalaryMin:  80000,
		})
		if err != nil {
			t.Fatalf("list by salary: %v", err)
		}
		if len(bySalary) != 1 || bySalary[0].Company != "Acme" {
			t.Fatalf("unexpected salary matches %v", bySalary)
		}

		bySearch, err := st.Jobs.List(ctx, domain.JobFilter{Search: "NURSE"})
		if err != nil {
			t.Fatalf("list by search: %v", err)
		}
		if len(bySearch) != 1 || bySearch[0].Company != "Lakeside" {
			t.Fatalf("search must be case-insensitive, got %v", bySearch)
		}
	})
}

func TestListingsReturnNewestFirst(t *testing.T) {
	runOnBothStores(t, "newest first", func(t *testing.T, st *Store) {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		// inserted oldest first on purpose: listing order must come from
		// the posted date, not from insertion order
		titles := []string{"Oldest", "Middle", "Newest"}
		for i, title := range titles {
			mustCreateJob(t, st, domain.Job{
				Title: title, Industry: "Technology",
				PostedDate: base.AddDate(0, 0, i),
			})
		}

		jobs, err := st.Jobs.List(ctx, domain.JobFilter{})
		if err != nil {
			t.Fatalf("list jobs: %v", err)
		}
		if len(jobs) != 3 {
			t.Fatalf("expected 3 jobs, got %d", len(jobs))
		}
		for i, want := range []string{"Newest", "Middle", "Oldest"} {
			if jobs[i].Title != want {
				t.Fatalf("jobs[%d] = %q, want %q", i, jobs[i].Title, want)
			}
		}
	})
}

func TestListingsCapAtLimit(t *testing.T) {
	runOnBothStores(t, "listing cap", func(t *testing.T, st *Store) {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < listLimit+5; i++ {
			mustCreateJob(t, st, domain.Job{
				Title:      "Bulk",
				Industry:   "Technology",
				PostedDate: base.Add(time.Duration(i) * time.Minute),
			})
		}

		jobs, err := st.Jobs.List(ctx, domain.JobFilter{})
		if err != nil {
			t.Fatalf("list jobs: %v", err)
		}
		if len(jobs) != listLimit {
			t.Fatalf("expected listing capped at %d, got %d", listLimit, len(jobs))
		}
	})
}

func TestApplicationPipeline(t *testing.T) {
	runOnBothStores(t, "application pipeline", func(t *testing.T, st *Store) {
		ctx := context.Background()
		job := mustCreateJob(t, st, domain.Job{Title: "Analyst", Industry: "Finance"})

		app, err := st.Applications.Create(ctx, domain.Application{
			JobID:  job.ID,
			Status: domain.StatusInterview, // ignored: every application starts Applied
		})
		if err != nil {
			t.Fatalf("create application: %v", err)
		}
		if app.Status != domain.StatusApplied {
			t.Fatalf("new application must start Applied, got %q", app.Status)
		}
		if app.AppliedDate.IsZero() {
			t.Fatal("applied date must be stamped at creation")
		}
		if app.ResumeUsed != domain.DefaultResumeLabel {
			t.Fatalf("missing resume label must default, got %q", app.ResumeUsed)
		}

		// Applied -> Interview skips Reviewing and is rejected
		if _, err := st.Applications.Update(ctx, app.ID, domain.ApplicationPatch{Status: strptr("Interview")}); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}

		var badStatus *domain.ValidationError
		if _, err := st.Applications.Update(ctx, app.ID, domain.ApplicationPatch{Status: strptr("archived")}); !errors.As(err, &badStatus) {
			t.Fatalf("expected validation error for unknown status, got %v", err)
		}

		reviewing, err := st.Applications.Update(ctx, app.ID, domain.ApplicationPatch{Status: strptr("reviewing")})
		if err != nil {
			t.Fatalf("advance to Reviewing: %v", err)
		}
		if reviewing.Status != domain.StatusReviewing {
			t.Fatalf("expected Reviewing, got %q", reviewing.Status)
		}

		// past Applied withdrawal is refused and the record stays put
		if err := st.Applications.Delete(ctx, app.ID); !errors.Is(err, ErrNotWithdrawable) {
			t.Fatalf("expected ErrNotWithdrawable, got %v", err)
		}
		if _, err := st.Applications.Get(ctx, app.ID); err != nil {
			t.Fatalf("refused withdrawal must keep the record: %v", err)
		}

		fresh, err := st.Applications.Create(ctx, domain.Application{JobID: job.ID})
		if err != nil {
			t.Fatalf("create second application: %v", err)
		}
		if err := st.Applications.Delete(ctx, fresh.ID); err != nil {
			t.Fatalf("withdraw while Applied: %v", err)
		}
	})
}

func TestApplicationsSkipDanglingJobReferences(t *testing.T) {
	runOnBothStores(t, "dangling references", func(t *testing.T, st *Store) {
		ctx := context.Background()
		kept := mustCreateJob(t, st, domain.Job{Title: "Kept", Industry: "Technology"})
		doomed := mustCreateJob(t, st, domain.Job{Title: "Doomed", Industry: "Technology"})

		keptApp, err := st.Applications.Create(ctx, domain.Application{JobID: kept.ID})
		if err != nil {
			t.Fatalf("create application: %v", err)
		}
		if _, err := st.Applications.Create(ctx, domain.Application{JobID: doomed.ID}); err != nil {
			t.Fatalf("create application: %v", err)
		}

		if err := st.Jobs.Delete(ctx, doomed.ID); err != nil {
			t.Fatalf("delete job: %v", err)
		}

		apps, err := st.Applications.List(ctx)
		if err != nil {
			t.Fatalf("list applications: %v", err)
		}
		if len(apps) != 1 || apps[0].ID != keptApp.ID {
			t.Fatalf("dangling application must be omitted, got %v", apps)
		}

		byJob, err := st.Applications.ListByJob(ctx, doomed.ID)
		if err != nil {
			t.Fatalf("list by job: %v", err)
		}
		if len(byJob) != 0 {
			t.Fatalf("dangling application must be omitted, got %v", byJob)
		}
	})
}

func TestAlertToggleAndValidation(t *testing.T) {
	runOnBothStores(t, "alerts", func(t *testing.T, st *Store) {
		ctx := context.Background()

		var invalid *domain.ValidationError
		if _, err := st.Alerts.Create(ctx, domain.Alert{Name: "  "}); !errors.As(err, &invalid) {
			t.Fatalf("blank name must be rejected, got %v", err)
		}

		created, err := st.Alerts.Create(ctx, domain.Alert{
			Name: "Tech remote",
			Filters: domain.AlertFilters{
				Industries:  []string{"Technology"},
				SalaryRange: domain.SalaryRange{Min: 90000, Max: 120000},
			},
			IsActive: true,
		})
		if err != nil {
			t.Fatalf("create alert: %v", err)
		}
		if created.Frequency != "daily" {
			t.Fatalf("missing frequency must default to daily, got %q", created.Frequency)
		}
		if created.Filters.SalaryLabel != "$90,000 - $120,000" {
			t.Fatalf("unexpected salary label %q", created.Filters.SalaryLabel)
		}

		toggled, err := st.Alerts.ToggleActive(ctx, created.ID)
		if err != nil {
			t.Fatalf("toggle alert: %v", err)
		}
		if toggled.IsActive {
			t.Fatal("toggle must flip active to false")
		}
		toggled, err = st.Alerts.ToggleActive(ctx, created.ID)
		if err != nil {
			t.Fatalf("toggle alert: %v", err)
		}
		if !toggled.IsActive {
			t.Fatal("second toggle must flip active back")
		}

		if _, err := st.Alerts.Update(ctx, created.ID, domain.AlertPatch{Frequency: strptr("hourly")}); !errors.As(err, &invalid) {
			t.Fatalf("unknown frequency must be rejected, got %v", err)
		}
	})
}

func TestResumeDefaultInvariant(t *testing.T) {
	runOnBothStores(t, "resume default", func(t *testing.T, st *Store) {
		ctx := context.Background()

		first, err := st.Resumes.Create(ctx, domain.Resume{Name: "one.pdf", FileKey: "resumes/1/a.pdf"})
		if err != nil {
			t.Fatalf("create resume: %v", err)
		}
		if !first.IsDefault {
			t.Fatal("first resume must become the default")
		}

		second, err := st.Resumes.Create(ctx, domain.Resume{Name: "two.pdf", FileKey: "resumes/1/b.pdf"})
		if err != nil {
			t.Fatalf("create resume: %v", err)
		}
		if second.IsDefault {
			t.Fatal("later resumes must not steal the default")
		}

		all, err := st.Resumes.SetDefault(ctx, second.ID)
		if err != nil {
			t.Fatalf("set default: %v", err)
		}
		defaults := 0
		for _, r := range all {
			if r.IsDefault {
				defaults++
				if r.ID != second.ID {
					t.Fatalf("default moved to wrong resume %d", r.ID)
				}
			}
		}
		if defaults != 1 {
			t.Fatalf("exactly one default expected, got %d", defaults)
		}

		if _, err := st.Resumes.SetDefault(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("set default on unknown id: expected ErrNotFound, got %v", err)
		}
	})
}

func TestQuestionFiltering(t *testing.T) {
	runOnBothStores(t, "question filtering", func(t *testing.T, st *Store) {
		ctx := context.Background()
		seedQuestions := []domain.Question{
			{Question: "Design a URL shortener.", Category: "software-engineering", Difficulty: "advanced", Tags: []string{"system-design"}},
			{Question: "Explain p-values.", Category: "data-science", Difficulty: "intermediate"},
			{Question: "Tell me about yourself.", Category: "general", Difficulty: "beginner"},
		}
		for _, q := range seedQuestions {
			if _, err := st.Questions.Create(ctx, q); err != nil {
				t.Fatalf("create question: %v", err)
			}
		}

		byCategory, err := st.Questions.List(ctx, domain.QuestionFilter{Category: "data-science"})
		if err != nil {
			t.Fatalf("list by category: %v", err)
		}
		if len(byCategory) != 1 || byCategory[0].Question != "Explain p-values." {
			t.Fatalf("unexpected category matches %v", byCategory)
		}

		// "all" leaves the criterion inactive
		all, err := st.Questions.List(ctx, domain.QuestionFilter{Category: "all", Difficulty: "all"})
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != len(seedQuestions) {
			t.Fatalf("expected %d questions, got %d", len(seedQuestions), len(all))
		}

		byTag, err := st.Questions.List(ctx, domain.QuestionFilter{Search: "SYSTEM-DESIGN"})
		if err != nil {
			t.Fatalf("list by search: %v", err)
		}
		if len(byTag) != 1 || byTag[0].Category != "software-engineering" {
			t.Fatalf("search must cover tags, got %v", byTag)
		}
	})
}

func TestSeedIsIdempotent(t *testing.T) {
	runOnBothStores(t, "seed", func(t *testing.T, st *Store) {
		ctx := context.Background()
		if err := Seed(ctx, st); err != nil {
			t.Fatalf("first seed: %v", err)
		}
		jobs, _ := st.Jobs.List(ctx, domain.JobFilter{})
		questions, _ := st.Questions.List(ctx, domain.QuestionFilter{})
		if len(jobs) == 0 || len(questions) == 0 {
			t.Fatal("seed must populate an empty store")
		}

		if err := Seed(ctx, st); err != nil {
			t.Fatalf("second seed: %v", err)
		}
		jobsAgain, _ := st.Jobs.List(ctx, domain.JobFilter{})
		if len(jobsAgain) != len(jobs) {
			t.Fatalf("seed must not duplicate: %d then %d", len(jobs), len(jobsAgain))
		}
	})
}

func TestUsers(t *testing.T) {
	runOnBothStores(t, "users", func(t *testing.T, st *Store) {
		ctx := context.Background()
		created, err := st.Users.Create(ctx, domain.User{Username: "demo", PasswordHash: "x"})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		byName, err := st.Users.GetByUsername(ctx, "demo")
		if err != nil || byName.ID != created.ID {
			t.Fatalf("lookup by username: %v %+v", err, byName)
		}
		if _, err := st.Users.GetByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("unknown username: expected ErrNotFound, got %v", err)
		}
	})
}
