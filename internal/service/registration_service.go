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

type existenceChecker[K comparable] interface {
	ExistsByID(ctx context.Context, id K) (bool, error)
}

// CreateRegistrationRequest enrols a student in a module.
type CreateRegistrationRequest struct {
	StudentID  *int   `json:"student_id" validate:"required,min=-2147483648,max=2147483647"`
	ModuleCode string `json:"module_code" validate:"required,max=10"`
}

// RegistrationService handles registration use-cases. Duplicate pairs are accepted.
type RegistrationService struct {
	repo      repository.Store[models.Registration, int]
	students  existenceChecker[int]
	modules   existenceChecker[string]
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo repository.Store[models.Registration, int], students existenceChecker[int], modules existenceChecker[string], validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, students: students, modules: modules, validator: validate, logger: logger}
}

// List returns all registrations and the total count.
func (s *RegistrationService) List(ctx context.Context) ([]models.Registration, int, error) {
	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to list registrations")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to count registrations")
	}
	return regs, total, nil
}

// Get returns one registration.
func (s *RegistrationService) Get(ctx context.Context, id int) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Internal(err, "failed to load registration")
	}
	return reg, nil
}

// Create registers a student for a module after checking both exist.
func (s *RegistrationService) Create(ctx context.Context, req CreateRegistrationRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	ok, err := s.students.ExistsByID(ctx, *req.StudentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check student")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	ok, err = s.modules.ExistsByID(ctx, req.ModuleCode)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check module")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
	}

	reg := &models.Registration{StudentID: *req.StudentID, ModuleCode: req.ModuleCode}
	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or module not found")
		}
		return nil, appErrors.Internal(err, "failed to create registration")
	}
	s.logger.Info("student registered",
		zap.Int("registration_id", reg.ID),
		zap.Int("student_id", reg.StudentID),
		zap.String("module_code", reg.ModuleCode),
	)
	return reg, nil
}

// Delete removes a registration. Grades already recorded are kept.
func (s *RegistrationService) Delete(ctx context.Context, id int) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check registration")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete registration")
	}
	s.logger.Info("registration deleted", zap.Int("registration_id", id))
	return nil
}
