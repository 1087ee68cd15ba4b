package auth

import (
	"errors"
	"testing"

	"jobportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardAuthenticated(t *testing.T) {
	t.Parallel()
	var g Guard

	err := g.Authenticated(nil)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeAuth, appErr.Code)
	assert.Equal(t, "Please login first", appErr.Message)

	assert.NoError(t, g.Authenticated(&Principal{UserID: 1, Role: models.RoleJobSeeker}))
}

func TestGuardRequireRole(t *testing.T) {
	t.Parallel()
	var g Guard

	seeker := &Principal{UserID: 1, Role: models.RoleJobSeeker}
	employer := &Principal{UserID: 2, Role: models.RoleEmployer}

	// Authentication is checked before role.
	err := g.RequireRole(nil, models.RoleEmployer, "Only employers can post jobs")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeAuth, appErr.Code)

	err = g.RequireRole(seeker, models.RoleEmployer, "Only employers can post jobs")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeForbidden, appErr.Code)
	assert.Equal(t, "Only employers can post jobs", appErr.Message)

	assert.NoError(t, g.RequireRole(employer, models.RoleEmployer, "Only employers can post jobs"))
}

func TestGuardRequireOwner(t *testing.T) {
	t.Parallel()
	var g Guard

	owner := &Principal{UserID: 7, Role: models.RoleEmployer}

	err := g.RequireOwner(nil, 7, "You can only edit your own jobs")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeAuth, appErr.Code)

	err = g.RequireOwner(&Principal{UserID: 8}, 7, "You can only edit your own jobs")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeForbidden, appErr.Code)
	assert.Equal(t, "You can only edit your own jobs", appErr.Message)

	assert.NoError(t, g.RequireOwner(owner, 7, "You can only edit your own jobs"))
}
