package domain

import "time"

// DefaultResumeLabel is stamped on applications submitted without an
// explicit resume selection. Deleting a resume later does not rewrite it;
// the label is a text snapshot.
const DefaultResumeLabel = "Default Resume"

// Industries lists the industry facet values offered by the search UI.
var Industries = []string{
	"Technology", "Healthcare", "Finance", "Education", "Marketing",
	"Engineering", "Sales", "Design", "Operations", "Legal",
}

// QuestionCategories lists the interview question categories.
var QuestionCategories = []string{
	"software-engineering", "data-science", "product-management",
	"marketing", "sales", "finance", "consulting", "general",
}

// SalaryRange 表示职位薪资区间，未知边界为 0。
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Empty reports whether no salary data is present at all.
func (r SalaryRange) Empty() bool {
	return r.Min == 0 && r.Max == 0
}

// Job is the canonical job listing shape served to clients.
type Job struct {
	ID                  uint        `json:"Id"`
	Title               string      `json:"title"`
	Company             string      `json:"company"`
	Location            string      `json:"location"`
	Industry            string      `json:"industry"`
	Salary              SalaryRange `json:"salary"`
	Description         string      `json:"description"`
	Requirements        []string    `json:"requirements"`
	PostedDate          time.Time   `json:"postedDate"`
	ApplicationDeadline time.Time   `json:"applicationDeadline,omitzero"`
}

// Status enumerates the application review pipeline.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusReviewing Status = "Reviewing"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
)

// CanTransition reports whether the review pipeline allows moving to next.
// Applied advances to Reviewing, Reviewing to Interview, and any
// non-terminal status may be rejected. Re-asserting the current status is
// a no-op and always allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch next {
	case StatusReviewing:
		return s == StatusApplied
	case StatusInterview:
		return s == StatusReviewing
	case StatusRejected:
		return s == StatusApplied || s == StatusReviewing || s == StatusInterview
	default:
		return false
	}
}

// Application is one user's submission against a job listing.
type Application struct {
	ID          uint      `json:"Id"`
	JobID       uint      `json:"jobId"`
	AppliedDate time.Time `json:"appliedDate"`
	Status      Status    `json:"status"`
	ResumeUsed  string    `json:"resumeUsed"`
	Notes       string    `json:"notes"`
}

// AlertFilters 是告警里保存的职位筛选条件。
type AlertFilters struct {
	JobTitle    string      `json:"jobTitle"`
	Location    string      `json:"location"`
	Industries  []string    `json:"industries"`
	SalaryRange SalaryRange `json:"salaryRange"`
	SalaryLabel string      `json:"salaryLabel,omitempty"`
}

// Alert is a saved job search a user wants notified about. Frequency and
// the active flag are stored attributes only; nothing schedules or fires
// alerts in this service.
type Alert struct {
	ID        uint         `json:"Id"`
	Name      string       `json:"name"`
	Filters   AlertFilters `json:"filters"`
	Frequency string       `json:"frequency"`
	IsActive  bool         `json:"isActive"`
}

// Resume is an uploaded resume file. At most one resume is the default.
type Resume struct {
	ID         uint      `json:"Id"`
	Name       string    `json:"name"`
	UploadDate time.Time `json:"uploadDate"`
	FileKey    string    `json:"fileKey"`
	IsDefault  bool      `json:"isDefault"`
}

// Question is one interview-prep entry.
type Question struct {
	ID           uint      `json:"Id"`
	Question     string    `json:"question"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	KeyPoints    []string  `json:"keyPoints"`
	SampleAnswer string    `json:"sampleAnswer"`
	Tips         []string  `json:"tips"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// User is a service account. The password hash never leaves the server.
type User struct {
	ID           uint   `json:"Id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// JobPatch carries a partial job update; nil fields are left untouched.
type JobPatch struct {
	Title               *string      `json:"title"`
	Company             *string      `json:"company"`
	Location            *string      `json:"location"`
	Industry            *string      `json:"industry"`
	Salary              *SalaryRange `json:"salary"`
	Description         *string      `json:"description"`
	Requirements        []string     `json:"requirements"`
	ApplicationDeadline *time.Time   `json:"applicationDeadline"`
}

// ApplicationPatch carries a partial application update. The applied date
// and the job reference are immutable after creation.
type ApplicationPatch struct {
	Status     *string `json:"status"`
	ResumeUsed *string `json:"resumeUsed"`
	Notes      *string `json:"notes"`
}

// AlertPatch carries a partial alert update.
type AlertPatch struct {
	Name      *string       `json:"name"`
	Filters   *AlertFilters `json:"filters"`
	Frequency *string       `json:"frequency"`
	IsActive  *bool         `json:"isActive"`
}
