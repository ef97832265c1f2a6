package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
	"github.com/sms-project/sms-backend/internal/validator"
)

// EnrollmentHandler handles enrollment management endpoints.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Update godoc
// PUT /api/v1/enrollment/update
// Applies a nested enrollment list for one student. Entries are processed in
// order; each entry flagged current triggers promotion, so the last one wins.
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req model.UpdateEnrollmentsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.enrollmentService.ReplaceEnrollments(c.Request.Context(), req.StudentID, req.Enrollments); err != nil {
		failFromService(c, err)
		return
	}

	enrollments, err := h.enrollmentService.ListOf(c.Request.Context(), req.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// ListForStudent godoc
// GET /api/v1/enrollment/student/:id
// Returns the full enrollment history of one student, current row included.
func (h *EnrollmentHandler) ListForStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	enrollments, err := h.enrollmentService.ListOf(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if enrollments == nil {
		enrollments = []model.Enrollment{}
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}
