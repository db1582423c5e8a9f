package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

type JobStore struct {
	DB *gorm.DB
}

func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{DB: db}
}

// ListActive returns every job whose expired flag is false.
func (s *JobStore) ListActive(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).Where("expired = ?", false).Find(&jobs).Error
	return jobs, translate(err)
}

func (s *JobStore) ListByPoster(ctx context.Context, userID uuid.UUID) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).Where("posted_by = ?", userID).Find(&jobs).Error
	return jobs, translate(err)
}

func (s *JobStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// FindDuplicate looks up a listing with the same field tuple as job.
// It returns ErrNotFound when there is none.
func (s *JobStore) FindDuplicate(ctx context.Context, job *models.Job) (*models.Job, error) {
	var existing models.Job
	err := s.DB.WithContext(ctx).
		Where("fingerprint = ?", job.ComputeFingerprint()).
		First(&existing).Error
	if err != nil {
		return nil, translate(err)
	}
	return &existing, nil
}

// Create inserts job. A listing identical to an existing one fails with ErrDuplicate.
func (s *JobStore) Create(ctx context.Context, job *models.Job) error {
	return translate(s.DB.WithContext(ctx).Create(job).Error)
}

// Save writes every column of job, recomputing its fingerprint.
func (s *JobStore) Save(ctx context.Context, job *models.Job) error {
	return translate(s.DB.WithContext(ctx).Save(job).Error)
}

func (s *JobStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
