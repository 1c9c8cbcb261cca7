package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-records-api/internal/models"
)

// RegistrationRepository manages student-module registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration and writes the generated id back.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	const query = `INSERT INTO registrations (student_id, module_code) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &reg.ID, query, reg.StudentID, reg.ModuleCode); err != nil {
		return wrap("create registration", err)
	}
	return nil
}

// FindByID fetches a registration by id.
func (r *RegistrationRepository) FindByID(ctx context.Context, id int) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, "SELECT id, student_id, module_code FROM registrations WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns every registration ordered by id.
func (r *RegistrationRepository) List(ctx context.Context) ([]models.Registration, error) {
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, "SELECT id, student_id, module_code FROM registrations ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Update repoints a registration.
func (r *RegistrationRepository) Update(ctx context.Context, reg *models.Registration) error {
	res, err := r.db.ExecContext(ctx, "UPDATE registrations SET student_id = $1, module_code = $2 WHERE id = $3", reg.StudentID, reg.ModuleCode, reg.ID)
	if err != nil {
		return wrap("update registration", err)
	}
	return requireAffected(res)
}

// DeleteByID removes a registration. Missing ids are not an error.
func (r *RegistrationRepository) DeleteByID(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM registrations WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

// ExistsByID reports whether a registration with id exists.
func (r *RegistrationRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM registrations WHERE id = $1)", id); err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

// Count returns the number of registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registrations"); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}
