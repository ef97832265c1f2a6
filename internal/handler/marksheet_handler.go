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

// MarksheetHandler handles exam types and marksheet records.
type MarksheetHandler struct {
	examService *service.ExamService
}

// NewMarksheetHandler creates a new MarksheetHandler.
func NewMarksheetHandler(examService *service.ExamService) *MarksheetHandler {
	return &MarksheetHandler{examService: examService}
}

// AddRecords godoc
// POST /api/v1/marks
// Accepts a batch of marksheet entries. The batch is all-or-nothing only per
// entry: entries before a failing one are kept.
func (h *MarksheetHandler) AddRecords(c *gin.Context) {
	var reqs []model.AddExamRecordRequest
	if err := c.ShouldBindJSON(&reqs); err != nil || len(reqs) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	records := make([]model.ExamRecord, 0, len(reqs))
	for _, req := range reqs {
		rec, err := h.examService.AddRecord(c.Request.Context(), req)
		if err != nil {
			failFromService(c, err)
			return
		}
		records = append(records, *rec)
	}

	response.Success(c, http.StatusCreated, gin.H{"records": records})
}

// UpdateRecord godoc
// PUT /api/v1/marks/:id
func (h *MarksheetHandler) UpdateRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.examService.UpdateRecord(c.Request.Context(), id, req.Marks, req.FullMarks)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": rec})
}

// DeleteRecord godoc
// DELETE /api/v1/marks/:id
func (h *MarksheetHandler) DeleteRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.DeleteRecord(c.Request.Context(), id); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// StudentRecords godoc
// GET /api/v1/marks/student/:id
// Returns every marksheet entry of one student across all classes.
func (h *MarksheetHandler) StudentRecords(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.examService.RecordsFor(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if records == nil {
		records = []model.ExamRecord{}
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// ListTypes godoc
// GET /api/v1/exam-types
func (h *MarksheetHandler) ListTypes(c *gin.Context) {
	types, err := h.examService.ListTypes(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if types == nil {
		types = []model.ExamType{}
	}
	response.Success(c, http.StatusOK, gin.H{"exam_types": types})
}

// CreateType godoc
// POST /api/v1/exam-types
func (h *MarksheetHandler) CreateType(c *gin.Context) {
	var req model.CreateExamTypeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	t, err := h.examService.CreateType(c.Request.Context(), req.Name)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam_type": t})
}

// UpdateType godoc
// PUT /api/v1/exam-types/:id
func (h *MarksheetHandler) UpdateType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateExamTypeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.examService.UpdateType(c.Request.Context(), id, req.Name); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// DeleteType godoc
// DELETE /api/v1/exam-types/:id
func (h *MarksheetHandler) DeleteType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.DeleteType(c.Request.Context(), id); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
