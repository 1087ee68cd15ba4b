package service

import (
	"context"
	"strings"

	"jobportal/internal/auth"
	"jobportal/internal/models"
	"jobportal/internal/repository"
)

// JobService handles job posting CRUD and discovery.
type JobService struct {
	jobs  repository.JobRepository
	guard auth.Guard
}

func NewJobService(jobs repository.JobRepository, guard auth.Guard) *JobService {
	return &JobService{jobs: jobs, guard: guard}
}

// JobInput carries the job form fields, used for both create and update.
type JobInput struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	JobType      string  `json:"job_type"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	IsActive     *bool   `json:"is_active"`
}

// Create posts a new job for the employer principal.
func (s *JobService) Create(ctx context.Context, p *auth.Principal, in JobInput) (*models.Job, error) {
	if err := s.guard.RequireRole(p, models.RoleEmployer, "Only employers can post jobs"); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	location := strings.TrimSpace(in.Location)
	description := strings.TrimSpace(in.Description)
	if title == "" || company == "" || location == "" || description == "" {
		return nil, models.NewValidationError("Title, company, location, and description are required")
	}

	jobType := in.JobType
	if jobType == "" {
		jobType = "full-time"
	}

	job := &models.Job{
		EmployerID:   p.UserID,
		Title:        title,
		Company:      company,
		Location:     location,
		JobType:      jobType,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Description:  description,
		Requirements: strings.TrimSpace(in.Requirements),
		IsActive:     true,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update overwrites every editable column of the job, including is_active,
// so the edit form can deactivate a posting. Only the owning employer may
// update; the employer_id never changes.
func (s *JobService) Update(ctx context.Context, p *auth.Principal, id uint, in JobInput) error {
	if err := s.guard.Authenticated(p); err != nil {
		return err
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return models.NewNotFoundError("Job not found")
	}
	if err := s.guard.RequireOwner(p, job.EmployerID, "You can only edit your own jobs"); err != nil {
		return err
	}

	jobType := in.JobType
	if jobType == "" {
		jobType = "full-time"
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	job.Title = strings.TrimSpace(in.Title)
	job.Company = strings.TrimSpace(in.Company)
	job.Location = strings.TrimSpace(in.Location)
	job.JobType = jobType
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.Description = strings.TrimSpace(in.Description)
	job.Requirements = strings.TrimSpace(in.Requirements)
	job.IsActive = isActive

	return s.jobs.Update(ctx, job)
}

// Delete removes a job permanently. Applications against it are removed by
// the foreign key cascade.
func (s *JobService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	if err := s.guard.Authenticated(p); err != nil {
		return err
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return models.NewNotFoundError("Job not found")
	}
	if err := s.guard.RequireOwner(p, job.EmployerID, "You can only delete your own jobs"); err != nil {
		return err
	}

	return s.jobs.Delete(ctx, id)
}

// List returns all active jobs, newest first.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return s.jobs.ListActive(ctx)
}

// Get returns a single active job. Inactive jobs are hidden from this public
// read; owners see them through MyJobs.
func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.jobs.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, models.NewNotFoundError("Job not found")
	}
	return job, nil
}

// Search filters active jobs. All provided filters are AND-combined: keyword
// matches title, description or company as a substring, location matches as a
// substring, job type matches exactly.
func (s *JobService) Search(ctx context.Context, keyword, location, jobType string) ([]models.Job, error) {
	return s.jobs.Search(ctx, strings.TrimSpace(keyword), strings.TrimSpace(location), jobType)
}

// MyJobs returns every job the employer has posted, inactive ones included.
func (s *JobService) MyJobs(ctx context.Context, p *auth.Principal) ([]models.Job, error) {
	if err := s.guard.RequireRole(p, models.RoleEmployer, "Only employers can view their jobs"); err != nil {
		return nil, err
	}
	return s.jobs.ListByEmployer(ctx, p.UserID)
}
