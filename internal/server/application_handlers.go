package server

import (
	"strconv"

	"jobportal/internal/models"
	"jobportal/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Apply submits an application. The body is multipart form data with job_id,
// cover_letter and an optional resume file.
func (s *Server) Apply(c *fiber.Ctx) error {
	jobID, _ := strconv.ParseUint(c.FormValue("job_id"), 10, 32)

	in := service.ApplyInput{
		JobID:       uint(jobID),
		CoverLetter: c.FormValue("cover_letter"),
	}
	if fh, err := c.FormFile("resume"); err == nil {
		in.Resume = fh
	}

	if _, err := s.applicationService.Apply(c.UserContext(), s.principal(c), in); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Application submitted successfully", nil)
}

// MyApplications lists the caller's applications with a joined job summary.
func (s *Server) MyApplications(c *fiber.Ctx) error {
	apps, err := s.applicationService.MyApplications(c.UserContext(), s.principal(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Your applications", apps)
}

// JobApplications lists applications against one of the employer's jobs.
func (s *Server) JobApplications(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "jobId")
	if err != nil {
		return nil
	}

	apps, err := s.applicationService.JobApplications(c.UserContext(), s.principal(c), jobID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Job applications", apps)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus moves an application between review states.
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "applicationId")
	if err != nil {
		return nil
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.applicationService.UpdateStatus(c.UserContext(), s.principal(c), id, req.Status); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, "Status updated successfully", nil)
}

// CheckApplication reports whether the caller has applied to a job. A missing
// application is a negative envelope, not an error.
func (s *Server) CheckApplication(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "jobId")
	if err != nil {
		return nil
	}

	app, err := s.applicationService.Check(c.UserContext(), s.principal(c), jobID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if app == nil {
		return models.RespondNegative(c, "Not applied", nil)
	}
	return models.Respond(c, "Already applied", fiber.Map{
		"id":     app.ID,
		"status": app.Status,
	})
}
