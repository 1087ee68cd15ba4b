package repository

import (
	"context"
	"errors"
	"strings"

	"jobportal/internal/models"

	"gorm.io/gorm"
)

// JobRepository handles job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// GetByID fetches any job regardless of active state, for owner paths.
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	// GetActiveByID fetches a job only if it is active, for public reads.
	GetActiveByID(ctx context.Context, id uint) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]models.Job, error)
	Search(ctx context.Context, keyword, location, jobType string) ([]models.Job, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobSelect = "jobs.*, users.name AS employer_name, users.email AS employer_email"

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewStorageError("Failed to post job", err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Select(jobSelect).
		Joins("JOIN users ON users.id = jobs.employer_id").
		Where("jobs.id = ?", id).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewStorageError("Failed to fetch job", err)
	}
	return &job, nil
}

func (r *jobRepository) GetActiveByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Select(jobSelect).
		Joins("JOIN users ON users.id = jobs.employer_id").
		Where("jobs.id = ? AND jobs.is_active = ?", id, true).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewStorageError("Failed to fetch job", err)
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	// Save writes every column so the edit form can clear optional fields.
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return models.NewStorageError("Failed to update job", err)
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Job{}, id).Error; err != nil {
		return models.NewStorageError("Failed to delete job", err)
	}
	return nil
}

func (r *jobRepository) ListActive(ctx context.Context) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	err := r.db.WithContext(ctx).
		Select("jobs.*, users.name AS employer_name").
		Joins("JOIN users ON users.id = jobs.employer_id").
		Where("jobs.is_active = ?", true).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, models.NewStorageError("Failed to list jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) Search(ctx context.Context, keyword, location, jobType string) ([]models.Job, error) {
	q := r.db.WithContext(ctx).
		Select("jobs.*, users.name AS employer_name").
		Joins("JOIN users ON users.id = jobs.employer_id").
		Where("jobs.is_active = ?", true)

	if keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		q = q.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR LOWER(jobs.company) LIKE ?", like, like, like)
	}
	if location != "" {
		q = q.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if jobType != "" {
		q = q.Where("jobs.job_type = ?", jobType)
	}

	jobs := make([]models.Job, 0)
	if err := q.Order("jobs.created_at DESC").Find(&jobs).Error; err != nil {
		return nil, models.NewStorageError("Failed to search jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID uint) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, models.NewStorageError("Failed to list jobs", err)
	}
	return jobs, nil
}
