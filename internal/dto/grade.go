package dto

import (
	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

const (
	MsgMissingParameters  = "Missing required parameters"
	MsgInvalidNumber      = "Invalid number format"
	MsgScoreRequired      = "Score is required"
	MsgInvalidScoreFormat = "Invalid score format"
)

var validate = validator.New()

type addGradeParams struct {
	StudentID    *string `validate:"required"`
	ModuleCode   *string `validate:"required"`
	Score        *string `validate:"required"`
	AcademicYear *string
}

// AddGradeRequest is a parsed POST /grades/addGrade[Validated] body.
type AddGradeRequest struct {
	StudentID    int
	ModuleCode   string
	Score        int
	AcademicYear *string
}

// ParseAddGrade checks presence of student_id, module_code and score, then
// parses the integers. academic_year is optional.
func ParseAddGrade(bag ParamBag) (AddGradeRequest, error) {
	params := addGradeParams{
		StudentID:    bag.Get("student_id"),
		ModuleCode:   bag.Get("module_code"),
		Score:        bag.Get("score"),
		AcademicYear: bag.Get("academic_year"),
	}
	if err := validate.Struct(params); err != nil {
		return AddGradeRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgMissingParameters)
	}

	studentID, err := parseInt(params.StudentID)
	if err != nil {
		return AddGradeRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgInvalidNumber)
	}
	score, err := parseInt(params.Score)
	if err != nil {
		return AddGradeRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgInvalidNumber)
	}

	return AddGradeRequest{
		StudentID:    studentID,
		ModuleCode:   *params.ModuleCode,
		Score:        score,
		AcademicYear: params.AcademicYear,
	}, nil
}

type updateGradeParams struct {
	Score *string `validate:"required"`
}

// UpdateGradeRequest is a parsed PUT /grades/:gradeId body.
type UpdateGradeRequest struct {
	Score int
}

// ParseUpdateGrade reads the new score.
func ParseUpdateGrade(bag ParamBag) (UpdateGradeRequest, error) {
	params := updateGradeParams{Score: bag.Get("score")}
	if err := validate.Struct(params); err != nil {
		return UpdateGradeRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgScoreRequired)
	}
	score, err := parseInt(params.Score)
	if err != nil {
		return UpdateGradeRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgInvalidScoreFormat)
	}
	return UpdateGradeRequest{Score: score}, nil
}

// ParseID parses an integer path segment such as :studentId or :gradeId.
func ParseID(name, raw string) (int, error) {
	id, err := parseInt32(raw)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+name)
	}
	return id, nil
}
