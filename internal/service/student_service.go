package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/repository"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

// CreateStudentRequest holds payload for creating students. The id is chosen by the caller.
type CreateStudentRequest struct {
	ID        *int   `json:"id" validate:"required,gte=0,max=2147483647"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Username  string `json:"username" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Username  string `json:"username" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      repository.Store[models.Student, int]
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.Store[models.Student, int], cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all students and the total count.
func (s *StudentService) List(ctx context.Context) ([]models.Student, int, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to list students")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to count students")
	}
	return students, total, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Create stores a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		ID:        *req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student id already used")
		}
		return nil, appErrors.Internal(err, "failed to create student")
	}
	s.logger.Info("student created", zap.Int("student_id", student.ID))
	return student, nil
}

// Update overwrites the student's profile fields.
func (s *StudentService) Update(ctx context.Context, id int, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to update student")
	}
	invalidateReports(ctx, s.cache, s.logger)
	return student, nil
}

// Delete removes a student together with their registrations and grades.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check student")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int("student_id", id))
	invalidateReports(ctx, s.cache, s.logger)
	return nil
}

func invalidateReports(ctx context.Context, cache cacheInvalidator, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ReportCachePattern); err != nil {
		logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}
