package domain

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"careerhub/internal/database"
)

// The normalizer maps stored records (flat field bags, list values kept as
// delimited text) to canonical entities and back. It substitutes defaults
// for absent fields, never errors for a structurally valid record, and is
// idempotent: normalizing the record form of a canonical entity reproduces
// the entity unchanged.

const (
	listSep = ","
	lineSep = "\n"
)

// SplitList splits a delimited text blob into trimmed entries, discarding
// empty ones. An already-split-and-joined value round-trips unchanged.
func SplitList(blob, sep string) []string {
	if strings.TrimSpace(blob) == "" {
		return []string{}
	}
	parts := strings.Split(blob, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList for canonical (trimmed, non-empty)
// entries.
func JoinList(items []string, sep string) string {
	return strings.Join(items, sep)
}

// ParseStatus resolves a stored status value case-insensitively, falling
// back to Applied for anything absent or unrecognized.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "reviewing":
		return StatusReviewing
	case "interview":
		return StatusInterview
	case "rejected":
		return StatusRejected
	default:
		return StatusApplied
	}
}

// KnownStatus reports whether raw names one of the pipeline statuses,
// compared case-insensitively.
func KnownStatus(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "applied", "reviewing", "interview", "rejected":
		return true
	}
	return false
}

// SalaryLabel renders the display label for a saved salary range, e.g.
// "$50,000 - $75,000". Ranges missing either bound have no label.
func SalaryLabel(r SalaryRange) string {
	if r.Min <= 0 || r.Max <= 0 {
		return ""
	}
	return fmt.Sprintf("$%s - $%s", humanize.Comma(int64(r.Min)), humanize.Comma(int64(r.Max)))
}

// JobFromRecord builds the canonical job from a stored record.
func JobFromRecord(rec database.Job) Job {
	j := Job{
		ID:           rec.ID,
		Title:        rec.Title,
		Company:      rec.Company,
		Location:     rec.Location,
		Industry:     rec.Industry,
		Salary:       SalaryRange{Min: rec.SalaryMin, Max: rec.SalaryMax},
		Description:  rec.Description,
		Requirements: SplitList(rec.Requirements, listSep),
		PostedDate:   rec.PostedDate,
	}
	if rec.ApplicationDeadline != nil {
		j.ApplicationDeadline = *rec.ApplicationDeadline
	}
	if j.Salary.Min < 0 {
		j.Salary.Min = 0
	}
	if j.Salary.Max < 0 {
		j.Salary.Max = 0
	}
	return j
}

// JobToRecord flattens a canonical job into its stored form. The gorm
// bookkeeping columns are left for the store to manage.
func JobToRecord(j Job) database.Job {
	rec := database.Job{
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Industry:     j.Industry,
		SalaryMin:    j.Salary.Min,
		SalaryMax:    j.Salary.Max,
		Description:  j.Description,
		Requirements: JoinList(j.Requirements, listSep),
		PostedDate:   j.PostedDate,
	}
	rec.ID = j.ID
	if !j.ApplicationDeadline.IsZero() {
		d := j.ApplicationDeadline
		rec.ApplicationDeadline = &d
	}
	return rec
}

// ApplicationFromRecord builds the canonical application from a stored
// record. A missing status defaults to Applied, a missing resume label to
// the fixed placeholder.
func ApplicationFromRecord(rec database.Application) Application {
	resumeUsed := strings.TrimSpace(rec.ResumeUsed)
	if resumeUsed == "" {
		resumeUsed = DefaultResumeLabel
	}
	return Application{
		ID:          rec.ID,
		JobID:       rec.JobID,
		AppliedDate: rec.AppliedDate,
		Status:      ParseStatus(rec.Status),
		ResumeUsed:  resumeUsed,
		Notes:       rec.Notes,
	}
}

// ApplicationToRecord flattens a canonical application.
func ApplicationToRecord(a Application) database.Application {
	rec := database.Application{
		JobID:       a.JobID,
		AppliedDate: a.AppliedDate,
		Status:      string(a.Status),
		ResumeUsed:  a.ResumeUsed,
		Notes:       a.Notes,
	}
	rec.ID = a.ID
	return rec
}

// AlertFromRecord builds the canonical alert, deriving the salary display
// label from the stored bounds.
func AlertFromRecord(rec database.JobAlert) Alert {
	frequency := strings.TrimSpace(rec.Frequency)
	if frequency == "" {
		frequency = "daily"
	}
	salary := SalaryRange{Min: rec.SalaryMin, Max: rec.SalaryMax}
	return Alert{
		ID:   rec.ID,
		Name: rec.Name,
		Filters: AlertFilters{
			JobTitle:    rec.JobTitle,
			Location:    rec.Location,
			Industries:  SplitList(rec.Industries, listSep),
			SalaryRange: salary,
			SalaryLabel: SalaryLabel(salary),
		},
		Frequency: frequency,
		IsActive:  rec.IsActive,
	}
}

// AlertToRecord flattens a canonical alert.
func AlertToRecord(a Alert) database.JobAlert {
	rec := database.JobAlert{
		Name:       a.Name,
		JobTitle:   a.Filters.JobTitle,
		Location:   a.Filters.Location,
		Industries: JoinList(a.Filters.Industries, listSep),
		SalaryMin:  a.Filters.SalaryRange.Min,
		SalaryMax:  a.Filters.SalaryRange.Max,
		Frequency:  a.Frequency,
		IsActive:   a.IsActive,
	}
	rec.ID = a.ID
	return rec
}

// ResumeFromRecord builds the canonical resume.
func ResumeFromRecord(rec database.Resume) Resume {
	return Resume{
		ID:         rec.ID,
		Name:       rec.Name,
		UploadDate: rec.UploadDate,
		FileKey:    rec.FileKey,
		IsDefault:  rec.IsDefault,
	}
}

// ResumeToRecord flattens a canonical resume.
func ResumeToRecord(r Resume) database.Resume {
	rec := database.Resume{
		Name:       r.Name,
		UploadDate: r.UploadDate,
		FileKey:    r.FileKey,
		IsDefault:  r.IsDefault,
	}
	rec.ID = r.ID
	return rec
}

// QuestionFromRecord builds the canonical interview question. Key points
// and tips split on newlines, tags on commas; category and difficulty fall
// back to "general" and "beginner".
func QuestionFromRecord(rec database.InterviewQuestion) Question {
	category := strings.TrimSpace(rec.Category)
	if category == "" {
		category = "general"
	}
	difficulty := strings.TrimSpace(rec.Difficulty)
	if difficulty == "" {
		difficulty = "beginner"
	}
	return Question{
		ID:           rec.ID,
		Question:     rec.Question,
		Category:     category,
		Difficulty:   difficulty,
		KeyPoints:    SplitList(rec.KeyPoints, lineSep),
		SampleAnswer: rec.SampleAnswer,
		Tips:         SplitList(rec.Tips, lineSep),
		Tags:         SplitList(rec.Tags, listSep),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// QuestionToRecord flattens a canonical interview question.
func QuestionToRecord(q Question) database.InterviewQuestion {
	rec := database.InterviewQuestion{
		Question:     q.Question,
		Category:     q.Category,
		Difficulty:   q.Difficulty,
		KeyPoints:    JoinList(q.KeyPoints, lineSep),
		SampleAnswer: q.SampleAnswer,
		Tips:         JoinList(q.Tips, lineSep),
		Tags:         JoinList(q.Tags, listSep),
	}
	rec.ID = q.ID
	rec.CreatedAt = q.CreatedAt
	rec.UpdatedAt = q.UpdatedAt
	return rec
}

// ValidationError marks a rejected entity field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateAlert enforces the alert invariants shared by both stores.
func ValidateAlert(a Alert) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	switch a.Frequency {
	case "", "daily", "weekly":
	default:
		return &ValidationError{Field: "frequency", Reason: `must be "daily" or "weekly"`}
	}
	return nil
}
