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

// HeaderDeviceID carries the device token on the hardware check-in path.
const HeaderDeviceID = "X-DEVICE-ID"

// AttendanceHandler handles the three attendance write paths and the read
// endpoints over the ledger.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkSelf godoc
// POST /api/v1/attendance/mark
// Marks the authenticated student present today. Marking twice is a conflict.
func (h *AttendanceHandler) MarkSelf(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	record, err := h.attendanceService.MarkSelf(c.Request.Context(), claims.UserID, time.Now())
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// MarkWithStatus godoc
// POST /api/v1/attendance/mark-with-status
// Sets an explicit outcome for a student's day, overwriting earlier outcomes.
func (h *AttendanceHandler) MarkWithStatus(c *gin.Context) {
	var req model.MarkWithStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		date = parsed
	}

	record, err := h.attendanceService.MarkWithStatus(c.Request.Context(), req.StudentID, req.Status, date)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// MarkByDevice godoc
// POST /api/v1/attendance/mark-by-device
// Marks a student present on behalf of authorized hardware. No JWT; the
// device token in the X-DEVICE-ID header is the credential. Re-marking an
// already marked day succeeds without effect.
func (h *AttendanceHandler) MarkByDevice(c *gin.Context) {
	deviceID := c.GetHeader(HeaderDeviceID)
	if deviceID == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorizedDevice)
		return
	}

	var req model.MarkByDeviceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attendanceService.MarkByDevice(c.Request.Context(), deviceID, req.StudentID, time.Now()); err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Detail godoc
// GET /api/v1/attendance/detail
// Returns the authenticated student's records for their current class.
func (h *AttendanceHandler) Detail(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.attendanceService.CurrentClassRecords(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromService(c, err)
		return
	}

	if records == nil {
		records = []model.AttendanceRecord{}
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// ClassAttendance godoc
// GET /api/v1/attendance/class/:id?date=2006-01-02
// Returns the roster of one class for one day, unmarked students included.
func (h *AttendanceHandler) ClassAttendance(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		date = parsed
	}

	roster, err := h.attendanceService.ClassRoster(c.Request.Context(), classID, date)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if roster == nil {
		roster = []model.ClassAttendanceRow{}
	}
	response.Success(c, http.StatusOK, gin.H{"roster": roster})
}

// StudentReport godoc
// GET /api/v1/attendance/report/:id
// Returns a student's current-class attendance records for staff review.
func (h *AttendanceHandler) StudentReport(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.attendanceService.CurrentClassRecords(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, err)
		return
	}

	if records == nil {
		records = []model.AttendanceRecord{}
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}
