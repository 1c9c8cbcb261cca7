package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-records-api/internal/dto"
	"github.com/noah-isme/academic-records-api/internal/middleware"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
	"github.com/noah-isme/academic-records-api/pkg/response"
)

// bindParams decodes the request body into a parameter bag. An empty body
// yields an empty bag so presence checks report the missing fields.
func bindParams(c *gin.Context) (dto.ParamBag, error) {
	bag := dto.ParamBag{}
	if err := c.ShouldBindJSON(&bag); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ParamBag{}, nil
		}
		return nil, invalidPayload(err)
	}
	return bag, nil
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}

// respond writes data together with whatever meta the request collected.
func respond(c *gin.Context, status int, data interface{}) {
	response.JSON(c, status, data, middleware.ExtractMeta(c))
}
