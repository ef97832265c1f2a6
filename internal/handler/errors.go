package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
)

// failFromService translates domain errors into the API error envelope.
// Handlers that need a non-default status for a specific error check it
// inline before falling through to this.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrRecordNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNoEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrNoEnrollment)
	case errors.Is(err, service.ErrAlreadyMarked):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyMarked)
	case errors.Is(err, service.ErrDuplicateRecord):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrDependencyExists):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrMarksOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrMarksOutOfRange)
	case errors.Is(err, service.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, service.ErrNotStudent):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, service.ErrDeviceUnknown),
		errors.Is(err, service.ErrDeviceInactive):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorizedDevice)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
