package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/middleware"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
	"github.com/sms-project/sms-backend/internal/validator"
)

// ParticipationHandler handles classroom participation marks.
type ParticipationHandler struct {
	participationService *service.ParticipationService
}

// NewParticipationHandler creates a new ParticipationHandler.
func NewParticipationHandler(participationService *service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participationService: participationService}
}

// Record godoc
// POST /api/v1/participation
// Stores a participation mark for a student's current class. One record per
// (student, class, subject).
func (h *ParticipationHandler) Record(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RecordParticipationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.participationService.Record(c.Request.Context(), req.StudentID, req.SubjectID, req.Mark, claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// Amend godoc
// PUT /api/v1/participation/:id
func (h *ParticipationHandler) Amend(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AmendParticipationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.participationService.Amend(c.Request.Context(), id, req.Mark); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// StudentRecords godoc
// GET /api/v1/participation/student/:id
// Lists a student's participation records for their current class.
func (h *ParticipationHandler) StudentRecords(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.participationService.RecordsFor(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if records == nil {
		records = []model.ParticipationRecord{}
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}
