package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/middleware"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
)

// DashboardHandler serves the aggregated per-student metrics: the percentage
// dashboard for humans and the raw feature record for the scoring model.
type DashboardHandler struct {
	metricsService *service.MetricsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(metricsService *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{metricsService: metricsService}
}

// OwnDashboard godoc
// GET /api/v1/student/dashboard
func (h *DashboardHandler) OwnDashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	h.serveDashboard(c, claims.UserID)
}

// StudentDashboard godoc
// GET /api/v1/dashboard/student/:id
func (h *DashboardHandler) StudentDashboard(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.serveDashboard(c, studentID)
}

func (h *DashboardHandler) serveDashboard(c *gin.Context, studentID int) {
	dashboard, err := h.metricsService.Dashboard(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dashboard": dashboard})
}

// OwnPrediction godoc
// GET /api/v1/mark-prediction
// Returns the feature record for the authenticated student. The field names
// belong to the external scoring model's schema and are served verbatim.
func (h *DashboardHandler) OwnPrediction(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	h.servePrediction(c, claims.UserID)
}

// PredictionByID godoc
// GET /api/v1/mark-prediction/by-id/:id
func (h *DashboardHandler) PredictionByID(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.servePrediction(c, studentID)
}

func (h *DashboardHandler) servePrediction(c *gin.Context, studentID int) {
	vector, err := h.metricsService.FeatureVector(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, vector)
}
