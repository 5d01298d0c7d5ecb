package domain

import "time"

// OTP is a one-time code bound to a single channel (phone or email).
// A nil *OTP on an Identity means the slot is empty.
type OTP struct {
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Identity is a jobseeker or employer account. The Role discriminant decides
// which table the record lives in and which profile fields are meaningful:
// jobseekers carry DOB/degree/specialization/experience, employers carry
// CompanyName.
type Identity struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone_number"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`

	// Jobseeker profile.
	DOB             string `json:"dob,omitempty"` // YYYY-MM-DD
	HighestDegree   string `json:"highest_degree,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	ExperienceYears int    `json:"work_experience,omitempty"`

	// Employer profile.
	CompanyName string `json:"company_name,omitempty"`

	PhoneOTP *OTP `json:"-"`
	EmailOTP *OTP `json:"-"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// RegisterJobseekerRequest starts a jobseeker registration.
type RegisterJobseekerRequest struct {
	Phone           string `json:"phone_number" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	DOB             string `json:"dob" validate:"required"` // expected format: YYYY-MM-DD
	HighestDegree   string `json:"highest_degree" validate:"required"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears *int   `json:"work_experience" validate:"required,min=0"`
}

// RegisterEmployerRequest starts an employer registration.
type RegisterEmployerRequest struct {
	Phone       string `json:"phone_number" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CompanyName string `json:"company_name" validate:"required"`
}

// ConfirmRegistrationRequest carries both channel codes; verification demands
// that each one validates independently.
type ConfirmRegistrationRequest struct {
	Phone    string `json:"phone_number" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PhoneOTP string `json:"phone_otp" validate:"required"`
	EmailOTP string `json:"email_otp" validate:"required"`
}

// LoginRequest asks for a fresh login OTP on the phone channel.
type LoginRequest struct {
	Phone string `json:"phone_number" validate:"required"`
	Role  string `json:"role" validate:"required"`
}

// ConfirmLoginRequest exchanges a phone OTP for a session token.
type ConfirmLoginRequest struct {
	Phone string `json:"phone_number" validate:"required"`
	OTP   string `json:"phone_otp" validate:"required"`
	Role  string `json:"role" validate:"required"`
}
