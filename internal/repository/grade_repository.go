package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-records-api/internal/models"
)

const gradeSelect = `SELECT g.id, g.score, g.academic_year, g.student_id, g.module_code,
        s.first_name, s.last_name, s.username, s.email,
        m.name AS module_name, m.mnc AS module_mnc
        FROM grades g
        JOIN students s ON s.id = g.student_id
        JOIN modules m ON m.code = g.module_code`

type gradeRow struct {
	ID           int     `db:"id"`
	Score        int     `db:"score"`
	AcademicYear *string `db:"academic_year"`
	StudentID    int     `db:"student_id"`
	ModuleCode   string  `db:"module_code"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	ModuleName   string  `db:"module_name"`
	ModuleMNC    bool    `db:"module_mnc"`
}

func (row gradeRow) toModel() models.Grade {
	return models.Grade{
		ID:           row.ID,
		Score:        row.Score,
		AcademicYear: row.AcademicYear,
		StudentID:    row.StudentID,
		ModuleCode:   row.ModuleCode,
		Student: &models.Student{
			ID:        row.StudentID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Username:  row.Username,
			Email:     row.Email,
		},
		Module: &models.Module{Code: row.ModuleCode, Name: row.ModuleName, MNC: row.ModuleMNC},
	}
}

// GradeRepository persists grades and reads them back with the owning
// student and module attached.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create inserts a grade and writes the generated id back.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	const query = `INSERT INTO grades (score, academic_year, student_id, module_code) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &grade.ID, query, grade.Score, grade.AcademicYear, grade.StudentID, grade.ModuleCode); err != nil {
		return wrap("create grade", err)
	}
	return nil
}

// FindByID fetches a grade by id.
func (r *GradeRepository) FindByID(ctx context.Context, id int) (*models.Grade, error) {
	var row gradeRow
	if err := r.db.GetContext(ctx, &row, gradeSelect+" WHERE g.id = $1", id); err != nil {
		return nil, err
	}
	grade := row.toModel()
	return &grade, nil
}

// List returns every grade ordered by id.
func (r *GradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	var rows []gradeRow
	if err := r.db.SelectContext(ctx, &rows, gradeSelect+" ORDER BY g.id"); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	grades := make([]models.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, row.toModel())
	}
	return grades, nil
}

// Update overwrites score, academic year and references.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	const query = `UPDATE grades SET score = $1, academic_year = $2, student_id = $3, module_code = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, grade.Score, grade.AcademicYear, grade.StudentID, grade.ModuleCode, grade.ID)
	if err != nil {
		return wrap("update grade", err)
	}
	return requireAffected(res)
}

// DeleteByID removes a grade. Missing ids are not an error.
func (r *GradeRepository) DeleteByID(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM grades WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}

// ExistsByID reports whether a grade with id exists.
func (r *GradeRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM grades WHERE id = $1)", id); err != nil {
		return false, fmt.Errorf("check grade: %w", err)
	}
	return exists, nil
}

// Count returns the number of grades.
func (r *GradeRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM grades"); err != nil {
		return 0, fmt.Errorf("count grades: %w", err)
	}
	return total, nil
}
