// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// resumeExtensions is the allow-list for uploaded resume files.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateEmail checks basic email format. Error strings are user-facing and
// surface verbatim in failure envelopes.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("Invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("Email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks the registration password constraints.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("Password must not exceed 128 characters")
	}
	return nil
}

// ValidateName checks a display name for presence and a sane upper bound.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("Name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("Name must not exceed 100 characters")
	}
	return nil
}

// AllowedResumeFile reports whether filename carries an accepted resume
// extension (pdf, doc, docx), case-insensitively.
func AllowedResumeFile(filename string) bool {
	return resumeExtensions[strings.ToLower(filepath.Ext(filename))]
}
