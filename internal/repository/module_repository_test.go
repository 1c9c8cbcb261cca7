package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/models"
)

func TestModuleRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO modules (code, name, mnc)")).
		WithArgs("COMP0010", "Software Engineering", true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, name, mnc FROM modules WHERE code = $1")).
		WithArgs("COMP0010").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "mnc"}).AddRow("COMP0010", "Software Engineering", true))

	require.NoError(t, repo.Create(context.Background(), &models.Module{Code: "COMP0010", Name: "Software Engineering", MNC: true}))

	module, err := repo.FindByID(context.Background(), "COMP0010")
	require.NoError(t, err)
	assert.True(t, module.MNC)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM modules WHERE code = $1")).
		WithArgs("COMP0010").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByID(context.Background(), "COMP0010"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
