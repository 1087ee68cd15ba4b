package server

import (
	"jobportal/internal/models"
	"jobportal/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListJobs returns all active jobs, newest first.
func (s *Server) ListJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Jobs retrieved", jobs)
}

// GetJob returns a single active job with employer contact details.
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "jobId")
	if err != nil {
		return nil
	}

	job, err := s.jobService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Job retrieved", job)
}

// CreateJob posts a new job for the authenticated employer.
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var in service.JobInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Create(c.UserContext(), s.principal(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Job posted successfully", fiber.Map{"id": job.ID})
}

// UpdateJob overwrites an owned job, including its active flag.
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "jobId")
	if err != nil {
		return nil
	}

	var in service.JobInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.jobService.Update(c.UserContext(), s.principal(c), id, in); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Job updated successfully", nil)
}

// DeleteJob removes an owned job permanently.
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "jobId")
	if err != nil {
		return nil
	}

	if err := s.jobService.Delete(c.UserContext(), s.principal(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Job deleted successfully", nil)
}

// SearchJobs filters active jobs by keyword, location and job type.
func (s *Server) SearchJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.Search(c.UserContext(),
		c.Query("keyword"), c.Query("location"), c.Query("job_type"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Search results", jobs)
}

// MyJobs lists every job the employer has posted, inactive ones included.
func (s *Server) MyJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.MyJobs(c.UserContext(), s.principal(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Your jobs", jobs)
}
