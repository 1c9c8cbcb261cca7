package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/service"
)

func newGradeRouter(s *store) http.Handler {
	grades := service.NewGradeService(s.grades, s.students, s.modules, s.registrations, nil, nil, nil)
	return newRouter(Handlers{Grades: NewGradeHandler(grades)})
}

func TestGradeAverages(t *testing.T) {
	r := newGradeRouter(newStore())

	w, env := perform(t, r, http.MethodGet, "/api/v1/grades/student/1001/average", "")
	require.Equal(t, http.StatusOK, w.Code)
	var student models.StudentAverage
	require.NoError(t, json.Unmarshal(env.Data, &student))
	assert.Equal(t, models.StudentAverage{StudentID: 1001, Average: 85.0}, student)

	w, env = perform(t, r, http.MethodGet, "/api/v1/grades/module/COMP0010/average", "")
	require.Equal(t, http.StatusOK, w.Code)
	var module models.ModuleAverage
	require.NoError(t, json.Unmarshal(env.Data, &module))
	assert.Equal(t, models.ModuleAverage{ModuleCode: "COMP0010", Average: 77.5}, module)
}

func TestGradeAverageWithoutGrades(t *testing.T) {
	r := newGradeRouter(newStore())

	w, env := perform(t, r, http.MethodGet, "/api/v1/grades/student/42/average", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "No grades available for student ID: 42", env.Error.Message)

	w, env = perform(t, r, http.MethodGet, "/api/v1/grades/module/NONE/average", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No grades available for module: NONE", env.Error.Message)
}

func TestGradeListsByStudentAndModule(t *testing.T) {
	r := newGradeRouter(newStore())

	w, env := perform(t, r, http.MethodGet, "/api/v1/grades/student/1001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var grades []models.Grade
	require.NoError(t, json.Unmarshal(env.Data, &grades))
	require.Len(t, grades, 2)
	assert.Equal(t, 80, grades[0].Score)
	assert.Equal(t, 90, grades[1].Score)
	require.NotNil(t, grades[0].Student)
	assert.Equal(t, 1001, grades[0].Student.ID)

	w, env = perform(t, r, http.MethodGet, "/api/v1/grades/module/UNKNOWN", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, _ = perform(t, r, http.MethodGet, "/api/v1/grades/student/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddGradeRejectsMalformedNumbersBeforeStoreAccess(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	for _, path := range []string{"/api/v1/grades/addGrade", "/api/v1/grades/addGradeValidated"} {
		w, env := perform(t, r, http.MethodPost, path, `{"student_id":"abc","module_code":"COMP0010","score":"85"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Invalid number format", env.Error.Message)
	}
	assert.Zero(t, s.calls())
	assert.Len(t, s.grades.items, 3)
}

func TestOutOfRangeIntegersRejectedBeforeStoreAccess(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", `{"student_id":2147483648,"module_code":"COMP0010","score":"85"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid number format", env.Error.Message)

	w, _ = perform(t, r, http.MethodPost, "/api/v1/grades/addGradeValidated", `{"student_id":"1001","module_code":"COMP0010","score":"9999999999"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = perform(t, r, http.MethodPut, "/api/v1/grades/1", `{"score":2147483648}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid score format", env.Error.Message)

	w, _ = perform(t, r, http.MethodGet, "/api/v1/grades/student/2147483648", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, s.calls())
	assert.Len(t, s.grades.items, 3)
}

func TestAddGradeMissingParameters(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPost, "/api/v1/grades/addGradeValidated", `{"student_id":"1001","score":"85"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required parameters", env.Error.Message)

	w, env = perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required parameters", env.Error.Message)

	w, _ = perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", `{"score":{"nested":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.calls())
}

func TestAddGradeUnknownStudentAndModule(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", `{"student_id":999,"module_code":"INVALID","score":50}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", env.Error.Message)
	assert.Len(t, s.grades.items, 3)

	w, env = perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", `{"student_id":2,"module_code":"INVALID","score":50}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Module not found", env.Error.Message)
	assert.Len(t, s.grades.items, 3)
}

func TestAddGradeUnvalidatedSkipsRegistration(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPost, "/api/v1/grades/addGrade", `{"student_id":"2","module_code":"COMP0011","score":"64"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var grade models.Grade
	require.NoError(t, json.Unmarshal(env.Data, &grade))
	assert.Equal(t, 4, grade.ID)
	assert.Equal(t, 64, grade.Score)
	assert.Nil(t, grade.AcademicYear)
	require.NotNil(t, grade.Module)
	assert.Equal(t, "COMP0011", grade.Module.Code)
}

func TestAddGradeValidated(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPost, "/api/v1/grades/addGradeValidated", `{"student_id":"2","module_code":"COMP0011","score":"70"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_REGISTRATION", env.Error.Code)
	assert.Equal(t, "Student 2 is not registered for module COMP0011", env.Error.Message)
	assert.Equal(t, float64(2), env.Error.Details["student_id"])
	assert.Equal(t, "COMP0011", env.Error.Details["module_code"])
	assert.Len(t, s.grades.items, 3)

	w, env = perform(t, r, http.MethodPost, "/api/v1/grades/addGradeValidated", `{"student_id":"2","module_code":"COMP0010","score":"88","academic_year":"2024/25"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var grade models.Grade
	require.NoError(t, json.Unmarshal(env.Data, &grade))
	assert.Equal(t, 88, grade.Score)
	require.NotNil(t, grade.AcademicYear)
	assert.Equal(t, "2024/25", *grade.AcademicYear)
	require.NotNil(t, grade.Student)
	assert.Equal(t, "Alan", grade.Student.FirstName)
	assert.Len(t, s.grades.items, 4)
}

func TestDeleteGrade(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, _ := perform(t, r, http.MethodDelete, "/api/v1/grades/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, s.grades.items, 2)

	w, env := perform(t, r, http.MethodDelete, "/api/v1/grades/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Grade 1 not found", env.Error.Message)
	assert.Len(t, s.grades.items, 2)
}

func TestUpdateGradeScore(t *testing.T) {
	s := newStore()
	r := newGradeRouter(s)

	w, env := perform(t, r, http.MethodPut, "/api/v1/grades/3", `{"score":"95"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var grade models.Grade
	require.NoError(t, json.Unmarshal(env.Data, &grade))
	assert.Equal(t, 95, grade.Score)
	assert.Equal(t, 95, s.grades.items[2].Score)

	w, env = perform(t, r, http.MethodPut, "/api/v1/grades/3", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Score is required", env.Error.Message)

	w, env = perform(t, r, http.MethodPut, "/api/v1/grades/3", `{"score":"high"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid score format", env.Error.Message)

	w, _ = perform(t, r, http.MethodPut, "/api/v1/grades/77", `{"score":"95"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGradeGenericReads(t *testing.T) {
	r := newGradeRouter(newStore())

	w, env := perform(t, r, http.MethodGet, "/api/v1/grades", "")
	require.Equal(t, http.StatusOK, w.Code)
	var grades []models.Grade
	require.NoError(t, json.Unmarshal(env.Data, &grades))
	assert.Len(t, grades, 3)

	w, _ = perform(t, r, http.MethodGet, "/api/v1/grades/2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/api/v1/grades/20", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
