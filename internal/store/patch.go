package store

import (
	"careerhub/internal/database"
	"careerhub/internal/domain"
)

// Patch application is shared between the GORM store and the in-memory
// fallback so both keep identical merge and state-machine semantics.

func applyJobPatch(rec *database.Job, p domain.JobPatch) {
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Company != nil {
		rec.Company = *p.Company
	}
	if p.Location != nil {
		rec.Location = *p.Location
	}
	if p.Industry != nil {
		rec.Industry = *p.Industry
	}
	if p.Salary != nil {
		rec.SalaryMin = p.Salary.Min
		rec.SalaryMax = p.Salary.Max
	}
	if p.Description != nil {
		rec.Description = *p.Description
	}
	if p.Requirements != nil {
		rec.Requirements = domain.JoinList(p.Requirements, ",")
	}
	if p.ApplicationDeadline != nil {
		deadline := *p.ApplicationDeadline
		rec.ApplicationDeadline = &deadline
	}
}

func applyApplicationPatch(rec *database.Application, p domain.ApplicationPatch) error {
	if p.Status != nil {
		if !domain.KnownStatus(*p.Status) {
			return &domain.ValidationError{Field: "status", Reason: "unknown status"}
		}
		next := domain.ParseStatus(*p.Status)
		if !domain.ParseStatus(rec.Status).CanTransition(next) {
			return ErrInvalidTransition
		}
		rec.Status = string(next)
	}
	if p.ResumeUsed != nil {
		rec.ResumeUsed = *p.ResumeUsed
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	return nil
}

func applyAlertPatch(rec *database.JobAlert, p domain.AlertPatch) error {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Filters != nil {
		rec.JobTitle = p.Filters.JobTitle
		rec.Location = p.Filters.Location
		rec.Industries = domain.JoinList(p.Filters.Industries, ",")
		rec.SalaryMin = p.Filters.SalaryRange.Min
		rec.SalaryMax = p.Filters.SalaryRange.Max
	}
	if p.Frequency != nil {
		rec.Frequency = *p.Frequency
	}
	if p.IsActive != nil {
		rec.IsActive = *p.IsActive
	}
	return domain.ValidateAlert(domain.AlertFromRecord(*rec))
}
