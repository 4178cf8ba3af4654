package store

import (
	"context"
	"fmt"
	"time"

	"careerhub/internal/domain"
)

// Seed loads the demo catalog into an empty store. Jobs and interview
// questions already present are left alone, so the seed is safe to run on
// every startup.
func Seed(ctx context.Context, st *Store) error {
	jobs, err := st.Jobs.List(ctx, domain.JobFilter{})
	if err != nil {
		return fmt.Errorf("inspect job catalog: %w", err)
	}
	if len(jobs) == 0 {
		for _, job := range DemoJobs() {
			if _, err := st.Jobs.Create(ctx, job); err != nil {
				return fmt.Errorf("seed job %q: %w", job.Title, err)
			}
		}
	}

	questions, err := st.Questions.List(ctx, domain.QuestionFilter{})
	if err != nil {
		return fmt.Errorf("inspect question catalog: %w", err)
	}
	if len(questions) == 0 {
		for _, q := range DemoQuestions() {
			if _, err := st.Questions.Create(ctx, q); err != nil {
				return fmt.Errorf("seed question %q: %w", q.Question, err)
			}
		}
	}
	return nil
}

// DemoJobs returns the sample job listings used by the fallback store and
// the admin seed command.
func DemoJobs() []domain.Job {
	posted := time.Now().UTC().AddDate(0, 0, -7)
	deadline := time.Now().UTC().AddDate(0, 1, 0)
	return []domain.Job{
		{
			Title:        "Senior Software Engineer",
			Company:      "TechFlow Inc.",
			Location:     "San Francisco, CA",
			Industry:     "Technology",
			Salary:       domain.SalaryRange{Min: 140000, Max: 180000},
			Description:  "Build and scale distributed backend services powering our hiring platform.",
			Requirements: []string{"5+ years backend experience", "Go or Java", "PostgreSQL"},
			PostedDate:   posted,
		},
		{
			Title:               "Financial Analyst",
			Company:             "Meridian Capital",
			Location:            "New York, NY",
			Industry:            "Finance",
			Salary:              domain.SalaryRange{Min: 85000, Max: 110000},
			Description:         "Own quarterly forecasting models and investor reporting.",
			Requirements:        []string{"3+ years FP&A", "Advanced Excel", "SQL"},
			PostedDate:          posted.AddDate(0, 0, 2),
			ApplicationDeadline: deadline,
		},
		{
			Title:        "Registered Nurse",
			Company:      "Lakeside Medical Center",
			Location:     "Chicago, IL",
			Industry:     "Healthcare",
			Salary:       domain.SalaryRange{Min: 72000, Max: 95000},
			Description:  "Provide patient care in a 40-bed medical-surgical unit.",
			Requirements: []string{"Active RN license", "BLS certification"},
			PostedDate:   posted.AddDate(0, 0, 3),
		},
		{
			Title:        "Product Designer",
			Company:      "Brightside Labs",
			Location:     "Remote",
			Industry:     "Design",
			Salary:       domain.SalaryRange{Min: 95000, Max: 130000},
			Description:  "Design end-to-end product experiences for our job-seeker tools.",
			Requirements: []string{"Portfolio of shipped work", "Figma", "Design systems"},
			PostedDate:   posted.AddDate(0, 0, 5),
		},
	}
}

// DemoQuestions returns the sample interview-prep catalog.
func DemoQuestions() []domain.Question {
	return []domain.Question{
		{
			Question:   "Tell me about yourself.",
			Category:   "general",
			Difficulty: "beginner",
			KeyPoints: []string{
				"Keep it under two minutes",
				"Connect your background to the role",
				"End with why you are here",
			},
			SampleAnswer: "Walk through your experience in reverse order, highlighting the work most relevant to the position, then close with what draws you to this opening.",
			Tips:         []string{"Practice out loud", "Avoid reciting your resume line by line"},
			Tags:         []string{"behavioral", "opening"},
		},
		{
			Question:   "How would you design a URL shortener?",
			Category:   "software-engineering",
			Difficulty: "intermediate",
			KeyPoints: []string{
				"Clarify scale requirements first",
				"Discuss key generation and collisions",
				"Cover storage and cache layers",
			},
			SampleAnswer: "Start from the read/write ratio, propose base62 keys over a counter or hash, then layer a cache in front of the key-value store and discuss redirect latency.",
			Tips:         []string{"Draw the data flow before naming technologies"},
			Tags:         []string{"system-design", "backend"},
		},
		{
			Question:   "Explain the bias-variance tradeoff.",
			Category:   "data-science",
			Difficulty: "advanced",
			KeyPoints: []string{
				"Define both sources of error",
				"Relate to over- and underfitting",
				"Mention regularization and cross-validation",
			},
			SampleAnswer: "High-bias models underfit by oversimplifying, high-variance models overfit noise; tuning model complexity and validating out of sample balances the two.",
			Tips:         []string{"Use a concrete model as your running example"},
			Tags:         []string{"machine-learning", "statistics"},
		},
		{
			Question:   "How do you prioritize a product backlog?",
			Category:   "product-management",
			Difficulty: "beginner",
			KeyPoints: []string{
				"Tie priorities to measurable outcomes",
				"Name a framework such as RICE",
				"Explain how you handle stakeholder pressure",
			},
			SampleAnswer: "Score candidate work against reach, impact, confidence and effort, then sanity-check the ranking with engineering and revisit it every cycle.",
			Tips:         []string{"Bring an example of a tough tradeoff you made"},
			Tags:         []string{"prioritization", "frameworks"},
		},
	}
}
