package repository

import (
	"testing"

	"jobportal/internal/database"
	"jobportal/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSQLiteDB opens an isolated in-memory database with the full schema,
// including the unique index on applications(job_id, user_id).
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestJob(t *testing.T, db *gorm.DB, employerID uint, title string, active bool) *models.Job {
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
