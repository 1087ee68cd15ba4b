package repository

import (
	"context"
	"errors"

	"jobportal/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository handles job application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByJobAndUser(ctx context.Context, jobID, userID uint) (*models.Application, error)
	// GetWithOwner fetches an application together with the ID of the
	// employer who owns the job it targets.
	GetWithOwner(ctx context.Context, id uint) (*models.Application, uint, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already applied for this job")
		}
		return models.NewStorageError("Failed to submit application", err)
	}
	return nil
}

func (r *applicationRepository) GetByJobAndUser(ctx context.Context, jobID, userID uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewStorageError("Failed to fetch application", err)
	}
	return &app, nil
}

func (r *applicationRepository) GetWithOwner(ctx context.Context, id uint) (*models.Application, uint, error) {
	var row struct {
		models.Application
		EmployerID uint
	}
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("applications.*, jobs.employer_id AS employer_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, models.NewStorageError("Failed to fetch application", err)
	}
	return &row.Application, row.EmployerID, nil
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	err := r.db.WithContext(ctx).
		Select("applications.*, jobs.title AS job_title, jobs.company AS job_company, jobs.location AS job_location").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.user_id = ?", userID).
		Order("applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, models.NewStorageError("Failed to list applications", err)
	}
	return apps, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	err := r.db.WithContext(ctx).
		Select("applications.*, users.name AS applicant_name, users.email AS applicant_email, users.phone AS applicant_phone").
		Joins("JOIN users ON users.id = applications.user_id").
		Where("applications.job_id = ?", jobID).
		Order("applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, models.NewStorageError("Failed to list applications", err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return models.NewStorageError("Failed to update application status", err)
	}
	return nil
}
