// Package models contains data structures for the application's domain models.
package models

import "time"

// Roles a user can hold. The role is fixed at registration; a user is either
// a job seeker or an employer, never both.
const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
)

// ValidRole reports whether role is one of the two supported account roles.
func ValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleEmployer
}

// User represents a registered account, either a job seeker or an employer.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:job_seeker" json:"role"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Jobs         []Job         `gorm:"foreignKey:EmployerID" json:"jobs,omitempty"`
	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
}
