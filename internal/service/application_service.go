package service

import (
	"context"
	"mime/multipart"
	"strings"

	"jobportal/internal/auth"
	"jobportal/internal/middleware"
	"jobportal/internal/models"
	"jobportal/internal/repository"
	"jobportal/internal/upload"
	"jobportal/internal/validation"
)

// ApplicationService handles job applications and their review workflow.
type ApplicationService struct {
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	resumes upload.Store
	guard   auth.Guard
}

func NewApplicationService(apps repository.ApplicationRepository, jobs repository.JobRepository, resumes upload.Store, guard auth.Guard) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, resumes: resumes, guard: guard}
}

// ApplyInput carries the application form. Resume is optional.
type ApplyInput struct {
	JobID       uint
	CoverLetter string
	Resume      *multipart.FileHeader
}

// Apply submits an application against an active job. A seeker can apply to
// a job at most once; the duplicate pre-check gives a friendly message and
// the unique index on (job_id, user_id) settles concurrent submissions.
func (s *ApplicationService) Apply(ctx context.Context, p *auth.Principal, in ApplyInput) (*models.Application, error) {
	if p == nil {
		return nil, models.NewAuthError("Please login to apply")
	}
	if err := s.guard.RequireRole(p, models.RoleJobSeeker, "Only job seekers can apply"); err != nil {
		return nil, err
	}
	if in.JobID == 0 {
		return nil, models.NewValidationError("Invalid job ID")
	}

	job, err := s.jobs.GetActiveByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, models.NewNotFoundError("Job not found or no longer active")
	}

	existing, err := s.apps.GetByJobAndUser(ctx, in.JobID, p.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already applied for this job")
	}

	var resumePath string
	if in.Resume != nil {
		if !validation.AllowedResumeFile(in.Resume.Filename) {
			return nil, models.NewValidationError("Only PDF, DOC, DOCX files are allowed")
		}
		resumePath, err = s.resumes.Save(in.Resume)
		if err != nil {
			return nil, models.NewStorageError("Failed to submit application", err)
		}
	}

	app := &models.Application{
		JobID:       in.JobID,
		UserID:      p.UserID,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		ResumePath:  resumePath,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		// Do not leave an orphaned resume behind a failed insert.
		if resumePath != "" {
			if rmErr := s.resumes.Remove(resumePath); rmErr != nil {
				middleware.Logger.WarnContext(ctx, "failed to remove orphaned resume",
					"path", resumePath, "error", rmErr)
			}
		}
		return nil, err
	}
	return app, nil
}

// MyApplications lists the caller's applications with a joined job summary,
// newest first.
func (s *ApplicationService) MyApplications(ctx context.Context, p *auth.Principal) ([]models.Application, error) {
	if err := s.guard.Authenticated(p); err != nil {
		return nil, err
	}
	return s.apps.ListByUser(ctx, p.UserID)
}

// JobApplications lists every application against one of the employer's own
// jobs, with joined applicant contact details.
func (s *ApplicationService) JobApplications(ctx context.Context, p *auth.Principal, jobID uint) ([]models.Application, error) {
	if err := s.guard.RequireRole(p, models.RoleEmployer, "Only employers can view applications"); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, models.NewNotFoundError("Job not found")
	}
	if err := s.guard.RequireOwner(p, job.EmployerID, "You can only view applications for your jobs"); err != nil {
		return nil, err
	}

	return s.apps.ListByJob(ctx, jobID)
}

// UpdateStatus moves an application between review states. Ownership is
// transitive: the employer must own the job the application targets.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p *auth.Principal, id uint, status string) error {
	if err := s.guard.RequireRole(p, models.RoleEmployer, "Only employers can update status"); err != nil {
		return err
	}
	if !models.ValidApplicationStatus(status) {
		return models.NewValidationError("Invalid status")
	}

	app, employerID, err := s.apps.GetWithOwner(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return models.NewNotFoundError("Application not found")
	}
	if err := s.guard.RequireOwner(p, employerID, "Unauthorized"); err != nil {
		return err
	}

	return s.apps.UpdateStatus(ctx, id, status)
}

// Check reports whether the caller has already applied to a job. A nil
// application means no prior application exists.
func (s *ApplicationService) Check(ctx context.Context, p *auth.Principal, jobID uint) (*models.Application, error) {
	if p == nil {
		return nil, models.NewAuthError("Not logged in")
	}
	return s.apps.GetByJobAndUser(ctx, jobID, p.UserID)
}
