package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/noah-isme/academic-records-api/internal/models"
)

// Store is the CRUD port every entity repository satisfies. FindByID returns
// sql.ErrNoRows when the key is absent.
type Store[T any, K comparable] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id K) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id K) error
	ExistsByID(ctx context.Context, id K) (bool, error)
	Count(ctx context.Context) (int, error)
}

var (
	_ Store[models.Student, int]      = (*StudentRepository)(nil)
	_ Store[models.Module, string]    = (*ModuleRepository)(nil)
	_ Store[models.Registration, int] = (*RegistrationRepository)(nil)
	_ Store[models.Grade, int]        = (*GradeRepository)(nil)
)

var (
	// ErrDuplicateKey reports a primary or unique key collision.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingReference reports a foreign key pointing at nothing.
	ErrMissingReference = errors.New("referenced row does not exist")
)

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// wrap prefixes err with op and maps PostgreSQL constraint violations onto the
// package sentinels.
func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrDuplicateKey, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrMissingReference, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
