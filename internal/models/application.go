package models

import "time"

// Application review statuses. Only the employer owning the referenced job
// may move an application between them.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

// ValidApplicationStatus reports whether status is one of the four review states.
func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusShortlisted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a job seeker's submission against an active job. The unique
// index on (job_id, user_id) enforces at most one application per seeker per
// job at the storage level, so concurrent duplicate submissions lose cleanly.
type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_applications_job_user" json:"user_id"`
	CoverLetter string    `json:"cover_letter"`
	ResumePath  string    `json:"resume_path,omitempty"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined job summary, present on the my-applications listing.
	JobTitle    string `gorm:"->;-:migration" json:"title,omitempty"`
	JobCompany  string `gorm:"->;-:migration" json:"company,omitempty"`
	JobLocation string `gorm:"->;-:migration" json:"location,omitempty"`

	// Joined applicant contact details, present on the job-applications listing.
	ApplicantName  string `gorm:"->;-:migration" json:"name,omitempty"`
	ApplicantEmail string `gorm:"->;-:migration" json:"email,omitempty"`
	ApplicantPhone string `gorm:"->;-:migration" json:"phone,omitempty"`
}
