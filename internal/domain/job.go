package domain

import (
	"strings"
	"time"
)

// Job is a position posted by an employer. Ownership is exclusive through
// EmployerID; only the owning employer (or an admin) may delete it.
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"job_title"`
	Specialization string    `json:"specialization"`
	MinExperience  int       `json:"minimum_work_experience"`
	Location       string    `json:"location"`
	Salary         int       `json:"salary"`
	EmployerID     string    `json:"employer_id"`
	CompanyName    string    `json:"company_name,omitempty"`
	CreatedAt      time.Time `json:"created"`
}

// CreateJobRequest is the employer-facing payload for posting a job.
type CreateJobRequest struct {
	Title          string `json:"job_title" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	MinExperience  *int   `json:"minimum_work_experience" validate:"required,min=0"`
	Location       string `json:"location" validate:"required"`
	Salary         *int   `json:"salary" validate:"required,min=0"`
}

// Eligible reports whether a jobseeker matches this job: specialization is
// compared case-insensitively and the seeker must meet the minimum experience.
func (j *Job) Eligible(seeker *Identity) bool {
	return strings.EqualFold(j.Specialization, seeker.Specialization) &&
		j.MinExperience <= seeker.ExperienceYears
}
