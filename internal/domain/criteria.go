package domain

import "careerhub/internal/filter"

// JobFilter carries the job search facets. Zero values leave the
// corresponding criterion inactive.
type JobFilter struct {
	Search     string   // free text over title, company, description
	Title      string   // job title substring
	Location   string   // location substring
	Industries []string // exact industry facet
	SalaryMin  int
	SalaryMax  int
}

// Criteria expands the facets into predicate-engine criteria. Keeping the
// field mapping here is what lets jobs and interview questions share one
// engine.
func (f JobFilter) Criteria() []filter.Criterion[Job] {
	return []filter.Criterion[Job]{
		filter.Substring[Job]{
			Term: f.Search,
			Fields: []func(Job) []string{
				filter.Field(func(j Job) string { return j.Title }),
				filter.Field(func(j Job) string { return j.Company }),
				filter.Field(func(j Job) string { return j.Description }),
			},
		},
		filter.Substring[Job]{
			Term:   f.Title,
			Fields: []func(Job) []string{filter.Field(func(j Job) string { return j.Title })},
		},
		filter.Substring[Job]{
			Term:   f.Location,
			Fields: []func(Job) []string{filter.Field(func(j Job) string { return j.Location })},
		},
		filter.Membership[Job]{
			Candidates: f.Industries,
			Field:      func(j Job) string { return j.Industry },
		},
		filter.Range[Job]{
			Min: f.SalaryMin,
			Max: f.SalaryMax,
			Bounds: func(j Job) (int, int, bool) {
				if j.Salary.Empty() {
					return 0, 0, false
				}
				return j.Salary.Min, j.Salary.Max, true
			},
		},
	}
}

// Empty reports whether every facet is unset.
func (f JobFilter) Empty() bool {
	return f.Search == "" && f.Title == "" && f.Location == "" &&
		len(f.Industries) == 0 && f.SalaryMin == 0 && f.SalaryMax == 0
}

// QuestionFilter carries the interview-prep facets.
type QuestionFilter struct {
	Search     string // free text over question, category and tags
	Category   string // exact, "all" disables
	Difficulty string // exact, "all" disables
}

// Criteria expands the facets into predicate-engine criteria.
func (f QuestionFilter) Criteria() []filter.Criterion[Question] {
	return []filter.Criterion[Question]{
		filter.Substring[Question]{
			Term: f.Search,
			Fields: []func(Question) []string{
				filter.Field(func(q Question) string { return q.Question }),
				filter.Field(func(q Question) string { return q.Category }),
				func(q Question) []string { return q.Tags },
			},
		},
		filter.Exact[Question]{
			Value: f.Category,
			Field: func(q Question) string { return q.Category },
		},
		filter.Exact[Question]{
			Value: f.Difficulty,
			Field: func(q Question) string { return q.Difficulty },
		},
	}
}
