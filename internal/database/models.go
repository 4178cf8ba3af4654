package database

import (
	"time"

	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
}

// Job is a stored job listing record. List-valued fields are kept as
// delimited text, the way the record store persists them; splitting and
// defaulting happen in the domain normalizer.
type Job struct {
	gorm.Model
	Title               string `gorm:"size:255;index"`
	Company             string `gorm:"size:255"`
	Location            string `gorm:"size:255;index"`
	Industry            string `gorm:"size:64;index"`
	SalaryMin           int
	SalaryMax           int
	Description         string `gorm:"type:text"`
	Requirements        string `gorm:"type:text"` // comma separated
	PostedDate          time.Time
	ApplicationDeadline *time.Time
}

// Application is a stored application record referencing a Job by id.
type Application struct {
	gorm.Model
	JobID       uint `gorm:"index"`
	AppliedDate time.Time
	Status      string `gorm:"size:32"`
	ResumeUsed  string `gorm:"size:255"`
	Notes       string `gorm:"type:text"`
}

// JobAlert 表示一条保存的职位订阅，筛选条件按存储字段平铺。
type JobAlert struct {
	gorm.Model
	Name       string `gorm:"size:255"`
	JobTitle   string `gorm:"size:255"`
	Location   string `gorm:"size:255"`
	Industries string `gorm:"size:512"` // comma separated
	SalaryMin  int
	SalaryMax  int
	Frequency  string `gorm:"size:16"`
	IsActive   bool
}

// Resume is a stored resume file reference.
type Resume struct {
	gorm.Model
	Name       string `gorm:"size:255"`
	UploadDate time.Time
	FileKey    string `gorm:"size:512"`
	IsDefault  bool
}

// InterviewQuestion is a stored interview-prep entry. Key points and tips
// are newline delimited, tags comma delimited.
type InterviewQuestion struct {
	gorm.Model
	Question     string `gorm:"type:text"`
	Category     string `gorm:"size:64;index"`
	Difficulty   string `gorm:"size:32;index"`
	KeyPoints    string `gorm:"type:text"`
	SampleAnswer string `gorm:"type:text"`
	Tips         string `gorm:"type:text"`
	Tags         string `gorm:"size:512"`
}
