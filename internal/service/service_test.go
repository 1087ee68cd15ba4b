package service

import (
	"bytes"
	"mime/multipart"
	"testing"

	"jobportal/internal/auth"
	"jobportal/internal/database"
	"jobportal/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedJob(t *testing.T, db *gorm.DB, employerID uint, title string, active bool) *models.Job {
	t.Helper()
	job := &models.Job{
		EmployerID:  employerID,
		Title:       title,
		Company:     "Acme Corp",
		Location:    "Springfield",
		JobType:     "full-time",
		Description: "Build things",
		IsActive:    active,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func principalFor(user *models.User) *auth.Principal {
	return &auth.Principal{UserID: user.ID, Name: user.Name, Role: user.Role}
}

func mustPrincipal() *auth.Principal {
	return &auth.Principal{UserID: 1, Name: "Someone", Role: models.RoleJobSeeker}
}

// resumeFileHeader builds a real multipart.FileHeader by round-tripping a
// form through the multipart reader.
func resumeFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("resume contents"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["resume"]
	require.Len(t, files, 1)
	return files[0]
}
