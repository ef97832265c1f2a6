package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/middleware"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
	"github.com/sms-project/sms-backend/internal/validator"
)

// AssignmentHandler handles assignment CRUD and submission grading.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// List godoc
// GET /api/v1/assignments?class_id=N
func (h *AssignmentHandler) List(c *gin.Context) {
	classID, err := strconv.Atoi(c.Query("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	assignments, err := h.assignmentService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if assignments == nil {
		assignments = []model.Assignment{}
	}
	response.Success(c, http.StatusOK, gin.H{"assignments": assignments})
}

// Create godoc
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment := &model.Assignment{
		Title:        req.Title,
		Body:         req.Body,
		TeacherID:    claims.UserID,
		ClassLevelID: req.ClassLevelID,
		SubjectID:    req.SubjectID,
		FullMarks:    req.FullMarks,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		assignment.Deadline = deadline
	}

	if err := h.assignmentService.Create(c.Request.Context(), assignment); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"assignment": assignment})
}

// Update godoc
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}

	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment.Title = req.Title
	assignment.Body = req.Body
	assignment.ClassLevelID = req.ClassLevelID
	assignment.SubjectID = req.SubjectID
	if req.FullMarks > 0 {
		assignment.FullMarks = req.FullMarks
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		assignment.Deadline = deadline
	}

	if err := h.assignmentService.Update(c.Request.Context(), assignment); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": assignment})
}

// Delete godoc
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Grade godoc
// POST /api/v1/assignments/:id/grade
// Records a graded submission. A second grade for the same (assignment,
// student) is a conflict; use the submission update endpoint to regrade.
func (h *AssignmentHandler) Grade(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GradeSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.assignmentService.Grade(c.Request.Context(), assignmentID, req.StudentID, req.Marks, req.Feedback)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": sub})
}

// Regrade godoc
// PUT /api/v1/submissions/:id
func (h *AssignmentHandler) Regrade(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RegradeSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.assignmentService.Regrade(c.Request.Context(), submissionID, req.Marks, req.Feedback)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}
