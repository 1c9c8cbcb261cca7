package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-records-api/internal/models"
)

// ModuleRepository manages persistence for modules keyed by code.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs a ModuleRepository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// Create inserts a module.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	const query = `INSERT INTO modules (code, name, mnc) VALUES (:code, :name, :mnc)`
	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		return wrap("create module", err)
	}
	return nil
}

// FindByID fetches a module by code.
func (r *ModuleRepository) FindByID(ctx context.Context, code string) (*models.Module, error) {
	var module models.Module
	if err := r.db.GetContext(ctx, &module, "SELECT code, name, mnc FROM modules WHERE code = $1", code); err != nil {
		return nil, err
	}
	return &module, nil
}

// List returns every module ordered by code.
func (r *ModuleRepository) List(ctx context.Context) ([]models.Module, error) {
	modules := []models.Module{}
	if err := r.db.SelectContext(ctx, &modules, "SELECT code, name, mnc FROM modules ORDER BY code"); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// Update overwrites name and mnc.
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE modules SET name = :name, mnc = :mnc WHERE code = :code`, module)
	if err != nil {
		return wrap("update module", err)
	}
	return requireAffected(res)
}

// DeleteByID removes a module. Missing codes are not an error.
func (r *ModuleRepository) DeleteByID(ctx context.Context, code string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM modules WHERE code = $1", code); err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	return nil
}

// ExistsByID reports whether a module with code exists.
func (r *ModuleRepository) ExistsByID(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM modules WHERE code = $1)", code); err != nil {
		return false, fmt.Errorf("check module: %w", err)
	}
	return exists, nil
}

// Count returns the number of modules.
func (r *ModuleRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM modules"); err != nil {
		return 0, fmt.Errorf("count modules: %w", err)
	}
	return total, nil
}
