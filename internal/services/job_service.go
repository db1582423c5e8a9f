package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/models"
)

const (
	MsgJobSeekerForbidden = "Job Seeker not allowed to access this resource."
	MsgMissingJobDetails  = "Please provide full job details."
	MsgSalaryMissing      = "Please either provide fixed salary or ranged salary."
	MsgSalaryBoth         = "Cannot Enter Fixed and Ranged Salary together."
	MsgSalaryNotPositive  = "Salary must be a positive number."
	MsgSalaryRangeOrder   = "Salary From cannot be greater than Salary To."
	MsgJobExists          = "Job already exist"
	MsgJobNotFound        = "Job not found"
	MsgJobNotFoundOops    = "OOPS! Job not found."
	MsgInvalidID          = "Invalid ID"
	MsgNotJobOwner        = "You are not allowed to modify this job."
)

// JobRepository is the storage the job service needs.
type JobRepository interface {
	ListActive(ctx context.Context) ([]models.Job, error)
	ListByPoster(ctx context.Context, userID uuid.UUID) ([]models.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindDuplicate(ctx context.Context, job *models.Job) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Save(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobService struct {
	Jobs JobRepository
	Log  *logging.Logger
}

func NewJobService(jobs JobRepository, log *logging.Logger) *JobService {
	return &JobService{
		Jobs: jobs,
		Log:  log,
	}
}

// ListActive returns every listing that is not expired.
func (s *JobService) ListActive(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.Jobs.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch jobs", err)
	}
	return jobs, nil
}

// Create posts a new listing owned by user.
func (s *JobService) Create(ctx context.Context, user *models.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	if err := requireEmployer(user); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		FixedSalary: req.FixedSalary,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		PostedBy:    user.ID,
	}
	if err := ValidateJob(job); err != nil {
		return nil, err
	}

	// The unique fingerprint index also rejects duplicates that race past this check.
	_, err := s.Jobs.FindDuplicate(ctx, job)
	switch {
	case err == nil:
		return nil, apperrors.BadRequest(MsgJobExists, nil)
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperrors.Internal("Failed to check for duplicate job", err)
	}

	if err := s.Jobs.Create(ctx, job); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperrors.BadRequest(MsgJobExists, err)
		}
		return nil, apperrors.Internal("Failed to create job", err)
	}

	s.Log.Info("job posted", "job_id", job.ID, "posted_by", user.ID)
	return job, nil
}

// ListMine returns the listings posted by user.
func (s *JobService) ListMine(ctx context.Context, user *models.User) ([]models.Job, error) {
	if err := requireEmployer(user); err != nil {
		return nil, err
	}
	jobs, err := s.Jobs.ListByPoster(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch jobs", err)
	}
	return jobs, nil
}

// Update applies a partial update and validates the merged listing.
func (s *JobService) Update(ctx context.Context, user *models.User, rawID string, req *dtos.JobUpdateRequest) (*models.Job, error) {
	if err := requireEmployer(user); err != nil {
		return nil, err
	}

	job, err := s.ownedJob(ctx, user, rawID)
	if err != nil {
		return nil, err
	}

	applyUpdate(job, req)
	if err := ValidateJob(job); err != nil {
		return nil, err
	}

	dup, err := s.Jobs.FindDuplicate(ctx, job)
	switch {
	case err == nil && dup.ID != job.ID:
		return nil, apperrors.BadRequest(MsgJobExists, nil)
	case err != nil && !errors.Is(err, database.ErrNotFound):
		return nil, apperrors.Internal("Failed to check for duplicate job", err)
	}

	if err := s.Jobs.Save(ctx, job); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperrors.BadRequest(MsgJobExists, err)
		}
		return nil, apperrors.Internal("Failed to update job", err)
	}

	s.Log.Info("job updated", "job_id", job.ID)
	return job, nil
}

// Delete removes a listing owned by user.
func (s *JobService) Delete(ctx context.Context, user *models.User, rawID string) error {
	if err := requireEmployer(user); err != nil {
		return err
	}

	job, err := s.ownedJob(ctx, user, rawID)
	if err != nil {
		return err
	}

	if err := s.Jobs.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.BadRequest(MsgJobNotFoundOops, err)
		}
		return apperrors.Internal("Failed to delete job", err)
	}

	s.Log.Info("job deleted", "job_id", job.ID)
	return nil
}

// Get returns a single listing by id, expired or not.
func (s *JobService) Get(ctx context.Context, rawID string) (*models.Job, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.NotFound(MsgInvalidID, err)
	}

	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound(MsgJobNotFound, err)
		}
		return nil, apperrors.Internal("Failed to fetch job", err)
	}
	return job, nil
}

func (s *JobService) ownedJob(ctx context.Context, user *models.User, rawID string) (*models.Job, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.BadRequest(MsgJobNotFoundOops, err)
	}

	job, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.BadRequest(MsgJobNotFoundOops, err)
		}
		return nil, apperrors.Internal("Failed to fetch job", err)
	}

	if job.PostedBy != user.ID {
		return nil, apperrors.BadRequest(MsgNotJobOwner, nil)
	}
	return job, nil
}

func requireEmployer(user *models.User) error {
	switch user.Role {
	case models.RoleEmployer:
		return nil
	case models.RoleJobSeeker:
		return apperrors.BadRequest(MsgJobSeekerForbidden, nil)
	}
	return apperrors.BadRequest("Unknown role.", nil)
}

func applyUpdate(job *models.Job, req *dtos.JobUpdateRequest) {
	setString(&job.Title, req.Title)
	setString(&job.Description, req.Description)
	setString(&job.Category, req.Category)
	setString(&job.Country, req.Country)
	setString(&job.City, req.City)
	setString(&job.Location, req.Location)
	if req.Expired != nil {
		job.Expired = *req.Expired
	}
	job.FixedSalary = req.FixedSalary.Apply(job.FixedSalary)
	job.SalaryFrom = req.SalaryFrom.Apply(job.SalaryFrom)
	job.SalaryTo = req.SalaryTo.Apply(job.SalaryTo)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ValidateJob checks the required fields and that exactly one salary form is present.
func ValidateJob(job *models.Job) error {
	for _, v := range []string{job.Title, job.Description, job.Category, job.Country, job.City, job.Location} {
		if strings.TrimSpace(v) == "" {
			return apperrors.BadRequest(MsgMissingJobDetails, nil)
		}
	}

	hasFixed := job.FixedSalary != nil
	hasFrom, hasTo := job.SalaryFrom != nil, job.SalaryTo != nil

	if hasFixed && (hasFrom || hasTo) {
		return apperrors.BadRequest(MsgSalaryBoth, nil)
	}
	if !hasFixed && !(hasFrom && hasTo) {
		return apperrors.BadRequest(MsgSalaryMissing, nil)
	}

	for _, v := range []*int{job.FixedSalary, job.SalaryFrom, job.SalaryTo} {
		if v != nil && *v <= 0 {
			return apperrors.BadRequest(MsgSalaryNotPositive, nil)
		}
	}
	if hasFrom && hasTo && *job.SalaryFrom > *job.SalaryTo {
		return apperrors.BadRequest(MsgSalaryRangeOrder, nil)
	}
	return nil
}
