package domain

import "time"

// JobApplication links a jobseeker to a job. The resume PDF itself lives in
// object storage under ResumeKey; only the filename and key are kept here.
// At most one application may exist per (job, jobseeker) pair, and an
// application is immutable once created.
type JobApplication struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobseekerID string    `json:"jobseeker_id"`
	ResumeName  string    `json:"resume_name"`
	ResumeKey   string    `json:"-"`
	CreatedAt   time.Time `json:"created"`
}

// Applicant is a jobseeker profile as seen by the employer reviewing
// applications for a job.
type Applicant struct {
	ApplicationID   string `json:"application_id"`
	Phone           string `json:"phone_number"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	DOB             string `json:"dob"`
	HighestDegree   string `json:"highest_degree"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"work_experience"`
}
