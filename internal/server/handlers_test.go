package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobportal/internal/auth"
	"jobportal/internal/config"
	"jobportal/internal/database"
	"jobportal/internal/models"
	"jobportal/internal/repository"
	"jobportal/internal/service"
	"jobportal/internal/session"
	"jobportal/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testCookieName = "job_portal_session"

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:            "0",
		Env:             "test",
		SessionCookie:   testCookieName,
		SessionTTLHours: 168,
		UploadDir:       t.TempDir(),
	}
	sessions := session.NewMemoryStore(time.Hour)
	resumes, err := upload.NewLocalStore(cfg.UploadDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		sessions:    sessions,
		resumes:     resumes,
		userRepo:    userRepo,
		jobRepo:     jobRepo,
		appRepo:     appRepo,
		profileRepo: profileRepo,
	}
	s.authService = service.NewAuthService(userRepo, sessions)
	s.jobService = service.NewJobService(jobRepo, s.guard)
	s.applicationService = service.NewApplicationService(appRepo, jobRepo, resumes, s.guard)
	s.profileService = service.NewProfileService(userRepo, profileRepo, sessions, s.guard)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, err)
		},
	})
	s.SetupRoutes(app)
	return s, app
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

// doJSON issues a request with an optional JSON body and session cookie and
// decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie string) (int, envelope, *http.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env, resp
}

// sessionCookie extracts the session token set by a login or register response.
func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func registerUser(t *testing.T, app *fiber.App, name, email, role string) (string, auth.Principal) {
	t.Helper()
	status, env, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "secret1",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success, env.Message)
	require.Equal(t, "Registration successful", env.Message)

	var p auth.Principal
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.NotZero(t, p.UserID)
	return sessionCookie(t, resp), p
}

func createJob(t *testing.T, app *fiber.App, cookie, title string) uint {
	t.Helper()
	status, env, _ := doJSON(t, app, http.MethodPost, "/api/jobs", fiber.Map{
		"title":       title,
		"company":     "Initech",
		"location":    "Berlin",
		"job_type":    "full-time",
		"salary_min":  60000,
		"salary_max":  90000,
		"description": "Write Go services",
	}, cookie)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success, env.Message)
	require.Equal(t, "Job posted successfully", env.Message)

	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

// applyMultipart submits an application as multipart form data.
func applyMultipart(t *testing.T, app *fiber.App, cookie string, jobID uint, resumeName string) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("job_id", fmt.Sprintf("%d", jobID)))
	require.NoError(t, w.WriteField("cover_letter", "Please consider me"))
	if resumeName != "" {
		fw, err := w.CreateFormFile("resume", resumeName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("resume contents"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	// Unauthenticated check is a negative envelope, not an error status.
	status, env, _ := doJSON(t, app, http.MethodGet, "/api/auth/check", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Not authenticated", env.Message)

	cookie, p := registerUser(t, app, "Sam", "sam@example.com", models.RoleJobSeeker)
	assert.Equal(t, models.RoleJobSeeker, p.Role)

	status, env, _ = doJSON(t, app, http.MethodGet, "/api/auth/check", nil, cookie)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Authenticated", env.Message)

	// Duplicate registration conflicts.
	status, env, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name": "Sam Again", "email": "sam@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already registered", env.Message)

	// Wrong password and unknown email fail identically.
	_, wrongPw, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "sam@example.com", "password": "nope",
	}, "")
	_, unknown, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "ghost@example.com", "password": "nope",
	}, "")
	assert.False(t, wrongPw.Success)
	assert.Equal(t, "Invalid email or password", wrongPw.Message)
	assert.Equal(t, wrongPw.Message, unknown.Message)

	status, env, resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "sam@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", env.Message)
	loginCookie := sessionCookie(t, resp)

	// Logout destroys the session.
	status, env, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, loginCookie)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", env.Message)

	_, env, _ = doJSON(t, app, http.MethodGet, "/api/auth/check", nil, loginCookie)
	assert.False(t, env.Success)
	assert.Equal(t, "Not authenticated", env.Message)
}

func TestJobLifecycleFlow(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	employerCookie, employer := registerUser(t, app, "Eve", "eve@example.com", models.RoleEmployer)
	seekerCookie, _ := registerUser(t, app, "Sam", "sam@example.com", models.RoleJobSeeker)

	// Seekers cannot post jobs.
	status, env, _ := doJSON(t, app, http.MethodPost, "/api/jobs", fiber.Map{
		"title": "X", "company": "Y", "location": "Z", "description": "W",
	}, seekerCookie)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only employers can post jobs", env.Message)

	jobID := createJob(t, app, employerCookie, "Go Developer")

	// Public listing shows the job with the employer's name joined in.
	status, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Jobs retrieved", env.Message)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Eve", jobs[0].EmployerName)

	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/jobs/%d", jobID), nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job retrieved", env.Message)
	var job models.Job
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, "eve@example.com", job.EmployerEmail)
	assert.Equal(t, employer.UserID, job.EmployerID)

	status, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid job ID", env.Message)

	// Search matches keyword and type.
	status, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/search?keyword=go&job_type=full-time", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Len(t, jobs, 1)

	// Only the owner may edit.
	status, env, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), fiber.Map{
		"title": "Hijacked", "company": "X", "location": "Y", "description": "Z",
	}, seekerCookie)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You can only edit your own jobs", env.Message)

	// The owner deactivates the posting.
	status, env, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), fiber.Map{
		"title": "Go Developer", "company": "Initech", "location": "Berlin",
		"job_type": "full-time", "description": "Write Go services", "is_active": false,
	}, employerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job updated successfully", env.Message)

	// Inactive jobs vanish from public reads but stay in my-jobs.
	_, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs", nil, "")
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Empty(t, jobs)

	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/jobs/%d", jobID), nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job not found", env.Message)

	_, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/search?keyword=go", nil, "")
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Empty(t, jobs)

	status, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/mine", nil, employerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Your jobs", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Len(t, jobs, 1)

	// Seekers have no my-jobs view.
	status, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/mine", nil, seekerCookie)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only employers can view their jobs", env.Message)

	// Delete is owner-only and permanent.
	status, env, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", jobID), nil, employerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job deleted successfully", env.Message)

	_, env, _ = doJSON(t, app, http.MethodGet, "/api/jobs/mine", nil, employerCookie)
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Empty(t, jobs)
}

func TestApplicationFlow(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	employerCookie, _ := registerUser(t, app, "Eve", "eve@example.com", models.RoleEmployer)
	seekerCookie, _ := registerUser(t, app, "Sam", "sam@example.com", models.RoleJobSeeker)
	jobID := createJob(t, app, employerCookie, "Go Developer")

	// Anonymous applications are rejected.
	status, env := applyMultipart(t, app, "", jobID, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Please login to apply", env.Message)

	// Employers cannot apply.
	status, env = applyMultipart(t, app, employerCookie, jobID, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only job seekers can apply", env.Message)

	// Disallowed resume extension.
	status, env = applyMultipart(t, app, seekerCookie, jobID, "payload.exe")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Only PDF, DOC, DOCX files are allowed", env.Message)

	status, env = applyMultipart(t, app, seekerCookie, jobID, "resume.pdf")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Application submitted successfully", env.Message)

	// One application per seeker per job.
	status, env = applyMultipart(t, app, seekerCookie, jobID, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "You have already applied for this job", env.Message)

	// The seeker's own listing carries the job summary.
	status, env, _ = doJSON(t, app, http.MethodGet, "/api/applications/mine", nil, seekerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Your applications", env.Message)
	var mine []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Go Developer", mine[0].JobTitle)

	// Only the owning employer sees a job's applications.
	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/applications/job/%d", jobID), nil, seekerCookie)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Only employers can view applications", env.Message)

	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/applications/job/%d", jobID), nil, employerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job applications", env.Message)
	var received []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &received))
	require.Len(t, received, 1)
	assert.Equal(t, "Sam", received[0].ApplicantName)
	assert.Equal(t, "sam@example.com", received[0].ApplicantEmail)
	appID := received[0].ID

	// Status review workflow.
	status, env, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), fiber.Map{
		"status": "hired",
	}, employerCookie)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status", env.Message)

	status, env, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), fiber.Map{
		"status": models.ApplicationStatusShortlisted,
	}, employerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Status updated successfully", env.Message)

	// The seeker's check reflects the review.
	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/applications/check/%d", jobID), nil, seekerCookie)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Already applied", env.Message)
	var checkData struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checkData))
	assert.Equal(t, appID, checkData.ID)
	assert.Equal(t, models.ApplicationStatusShortlisted, checkData.Status)

	// An un-applied job checks negative without an error status.
	otherJob := createJob(t, app, employerCookie, "SRE")
	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/applications/check/%d", otherJob), nil, seekerCookie)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Not applied", env.Message)
}

func TestApplyToInactiveJob(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	employerCookie, _ := registerUser(t, app, "Eve", "eve@example.com", models.RoleEmployer)
	seekerCookie, _ := registerUser(t, app, "Sam", "sam@example.com", models.RoleJobSeeker)
	jobID := createJob(t, app, employerCookie, "Go Developer")

	status, env, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), fiber.Map{
		"title": "Go Developer", "company": "Initech", "location": "Berlin",
		"description": "Write Go services", "is_active": false,
	}, employerCookie)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success, env.Message)

	status, env = applyMultipart(t, app, seekerCookie, jobID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Job not found or no longer active", env.Message)
}

func TestProfileFlow(t *testing.T) {
	t.Parallel()
	_, app := newTestServer(t)

	cookie, p := registerUser(t, app, "Sam", "sam@example.com", models.RoleJobSeeker)

	// The caller's own profile merges user fields with empty extensions.
	status, env, _ := doJSON(t, app, http.MethodGet, "/api/profile", nil, cookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile retrieved", env.Message)
	var view models.ProfileView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Sam", view.Name)
	assert.Empty(t, view.Bio)

	// Updating requires a name.
	status, env, _ = doJSON(t, app, http.MethodPut, "/api/profile", fiber.Map{
		"name": "", "bio": "Gopher",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", env.Message)

	status, env, _ = doJSON(t, app, http.MethodPut, "/api/profile", fiber.Map{
		"name": "Samuel", "phone": "555-0100", "bio": "Gopher", "github": "https://github.com/sam",
	}, cookie)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile updated successfully", env.Message)

	// The session's cached name was refreshed along with the row.
	status, env, _ = doJSON(t, app, http.MethodGet, "/api/auth/check", nil, cookie)
	require.Equal(t, http.StatusOK, status)
	var refreshed auth.Principal
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	assert.Equal(t, "Samuel", refreshed.Name)

	// Profiles are publicly readable by user ID.
	status, env, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profile/%d", p.UserID), nil, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Samuel", view.Name)
	assert.Equal(t, "Gopher", view.Bio)
	assert.Equal(t, "555-0100", view.Phone)

	status, env, _ = doJSON(t, app, http.MethodGet, "/api/profile/99999", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", env.Message)

	// Anonymous update is rejected.
	status, env, _ = doJSON(t, app, http.MethodPut, "/api/profile", fiber.Map{"name": "X"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Please login first", env.Message)
}
