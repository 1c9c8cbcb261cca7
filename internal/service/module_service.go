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

// CreateModuleRequest holds payload for creating modules.
type CreateModuleRequest struct {
	Code string `json:"code" validate:"required,max=10"`
	Name string `json:"name" validate:"required,max=100"`
	MNC  bool   `json:"mnc"`
}

// UpdateModuleRequest holds payload for updating modules.
type UpdateModuleRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	MNC  bool   `json:"mnc"`
}

// ModuleService handles module use-cases.
type ModuleService struct {
	repo      repository.Store[models.Module, string]
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewModuleService constructs the module service.
func NewModuleService(repo repository.Store[models.Module, string], cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all modules and the total count.
func (s *ModuleService) List(ctx context.Context) ([]models.Module, int, error) {
	modules, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to list modules")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, appErrors.Internal(err, "failed to count modules")
	}
	return modules, total, nil
}

// Get returns one module.
func (s *ModuleService) Get(ctx context.Context, code string) (*models.Module, error) {
	module, err := s.repo.FindByID(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.Internal(err, "failed to load module")
	}
	return module, nil
}

// Create stores a new module.
func (s *ModuleService) Create(ctx context.Context, req CreateModuleRequest) (*models.Module, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid module payload")
	}
	module := &models.Module{Code: req.Code, Name: req.Name, MNC: req.MNC}
	if err := s.repo.Create(ctx, module); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "module code already used")
		}
		return nil, appErrors.Internal(err, "failed to create module")
	}
	s.logger.Info("module created", zap.String("module_code", module.Code))
	return module, nil
}

// Update overwrites name and mnc.
func (s *ModuleService) Update(ctx context.Context, code string, req UpdateModuleRequest) (*models.Module, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid module payload")
	}
	module := &models.Module{Code: code, Name: req.Name, MNC: req.MNC}
	if err := s.repo.Update(ctx, module); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.Internal(err, "failed to update module")
	}
	invalidateReports(ctx, s.cache, s.logger)
	return module, nil
}

// Delete removes a module together with its registrations and grades.
func (s *ModuleService) Delete(ctx context.Context, code string) error {
	exists, err := s.repo.ExistsByID(ctx, code)
	if err != nil {
		return appErrors.Internal(err, "failed to check module")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "module not found")
	}
	if err := s.repo.DeleteByID(ctx, code); err != nil {
		return appErrors.Internal(err, "failed to delete module")
	}
	s.logger.Info("module deleted", zap.String("module_code", code))
	invalidateReports(ctx, s.cache, s.logger)
	return nil
}
