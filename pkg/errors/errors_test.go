package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneMatchesPredefinedByCode(t *testing.T) {
	err := Clone(ErrNoRegistration, "Student 7 is not registered for module COMP0010")

	assert.True(t, errors.Is(err, ErrNoRegistration))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.Equal(t, "student is not registered for module", ErrNoRegistration.Message)
}

func TestWrappedErrorStillMatches(t *testing.T) {
	err := fmt.Errorf("outer: %w", Clone(ErrNoGradeAvailable, "none"))

	assert.ErrorIs(t, err, ErrNoGradeAvailable)
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)

	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
	assert.Nil(t, FromError(nil))
}

func TestWithDetailsDoesNotMutatePredefined(t *testing.T) {
	err := WithDetails(ErrNoRegistration, map[string]interface{}{"student_id": 1})

	assert.Equal(t, 1, err.Details["student_id"])
	assert.Nil(t, ErrNoRegistration.Details)
}
