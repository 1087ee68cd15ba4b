package models

import "time"

// Job is a posting created by an employer. EmployerID never changes after
// creation. Inactive jobs are hidden from public listings but remain visible
// to their owner via the my-jobs listing.
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployerID   uint      `gorm:"not null;index" json:"employer_id"`
	Title        string    `gorm:"not null" json:"title"`
	Company      string    `gorm:"not null" json:"company"`
	Location     string    `gorm:"not null" json:"location"`
	JobType      string    `gorm:"not null;default:full-time" json:"job_type"`
	SalaryMin    float64   `json:"salary_min"`
	SalaryMax    float64   `json:"salary_max"`
	Description  string    `gorm:"not null" json:"description"`
	Requirements string    `json:"requirements"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// EmployerName and EmployerEmail are filled from a join against the users
	// table on read paths; they are never persisted on the jobs table.
	EmployerName  string `gorm:"->;-:migration" json:"employer_name,omitempty"`
	EmployerEmail string `gorm:"->;-:migration" json:"employer_email,omitempty"`
}
