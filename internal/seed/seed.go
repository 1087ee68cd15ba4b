// Package seed populates the database with demo employers, seekers, jobs and
// applications for local development.
package seed

import (
	"fmt"
	"time"

	"jobportal/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded account logs in with.
const DemoPassword = "password123"

var jobTypes = []string{"full-time", "part-time", "contract", "internship", "remote"}

// Seeder creates demo data through the same GORM models the app uses.
type Seeder struct {
	db           *gorm.DB
	passwordHash string
}

func NewSeeder(db *gorm.DB) (*Seeder, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &Seeder{db: db, passwordHash: string(hash)}, nil
}

// ClearAll removes every seeded row, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Application{},
		&models.Profile{},
		&models.Job{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// CreateEmployer inserts an employer account.
func (s *Seeder) CreateEmployer() (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: s.passwordHash,
		Role:     models.RoleEmployer,
		Phone:    gofakeit.Phone(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSeeker inserts a job seeker account with a profile row.
func (s *Seeder) CreateSeeker() (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: s.passwordHash,
		Role:     models.RoleJobSeeker,
		Phone:    gofakeit.Phone(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:   user.ID,
		Bio:      gofakeit.Sentence(12),
		Address:  gofakeit.Address().Address,
		Website:  gofakeit.URL(),
		Github:   "https://github.com/" + gofakeit.Username(),
		Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateJob inserts a job for the employer. Roughly one in five postings is
// inactive so listings exercise the active filter.
func (s *Seeder) CreateJob(employer *models.User) (*models.Job, error) {
	salaryMin := float64(gofakeit.Number(40, 120)) * 1000
	job := &models.Job{
		EmployerID:   employer.ID,
		Title:        gofakeit.JobTitle(),
		Company:      gofakeit.Company(),
		Location:     gofakeit.City() + ", " + gofakeit.StateAbr(),
		JobType:      jobTypes[gofakeit.Number(0, len(jobTypes)-1)],
		SalaryMin:    salaryMin,
		SalaryMax:    salaryMin + float64(gofakeit.Number(10, 60))*1000,
		Description:  gofakeit.Paragraph(2, 4, 8, "\n"),
		Requirements: gofakeit.Paragraph(1, 3, 6, "\n"),
		IsActive:     gofakeit.Number(1, 5) != 1,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// CreateApplication inserts an application from seeker to job. Duplicate
// picks hit the unique index and are skipped by the caller.
func (s *Seeder) CreateApplication(job *models.Job, seeker *models.User) (*models.Application, error) {
	statuses := []string{
		models.ApplicationStatusPending,
		models.ApplicationStatusPending,
		models.ApplicationStatusReviewed,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusRejected,
	}
	app := &models.Application{
		JobID:       job.ID,
		UserID:      seeker.ID,
		CoverLetter: gofakeit.Paragraph(1, 2, 8, "\n"),
		Status:      statuses[gofakeit.Number(0, len(statuses)-1)],
	}
	if err := s.db.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Run seeds the requested volume of demo data and reports what it created.
func (s *Seeder) Run(numEmployers, numSeekers, jobsPerEmployer, applicationsPerSeeker int) error {
	employers := make([]*models.User, 0, numEmployers)
	for i := 0; i < numEmployers; i++ {
		employer, err := s.CreateEmployer()
		if err != nil {
			return fmt.Errorf("seed employer: %w", err)
		}
		employers = append(employers, employer)
	}

	seekers := make([]*models.User, 0, numSeekers)
	for i := 0; i < numSeekers; i++ {
		seeker, err := s.CreateSeeker()
		if err != nil {
			return fmt.Errorf("seed seeker: %w", err)
		}
		seekers = append(seekers, seeker)
	}

	jobs := make([]*models.Job, 0, numEmployers*jobsPerEmployer)
	for _, employer := range employers {
		for i := 0; i < jobsPerEmployer; i++ {
			job, err := s.CreateJob(employer)
			if err != nil {
				return fmt.Errorf("seed job: %w", err)
			}
			jobs = append(jobs, job)
		}
	}

	applied := 0
	for _, seeker := range seekers {
		seen := make(map[uint]bool)
		for i := 0; i < applicationsPerSeeker && len(seen) < len(jobs); i++ {
			job := jobs[gofakeit.Number(0, len(jobs)-1)]
			if seen[job.ID] || !job.IsActive {
				continue
			}
			seen[job.ID] = true
			if _, err := s.CreateApplication(job, seeker); err != nil {
				return fmt.Errorf("seed application: %w", err)
			}
			applied++
		}
	}

	fmt.Printf("Seeded %d employers, %d seekers, %d jobs, %d applications\n",
		len(employers), len(seekers), len(jobs), applied)
	fmt.Printf("All accounts use the password %q\n", DemoPassword)
	return nil
}
