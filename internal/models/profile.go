package models

import "time"

// Profile holds the optional extended fields of a user. It is created lazily
// on the first profile update; a missing row reads as empty fields.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio       string    `json:"bio"`
	Address   string    `json:"address"`
	Website   string    `json:"website"`
	Github    string    `json:"github"`
	Linkedin  string    `json:"linkedin"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ProfileView merges the public user fields with the profile extension for
// the profile get operation.
type ProfileView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
	Bio       string `json:"bio"`
	Address   string `json:"address"`
	Website   string `json:"website"`
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
}
