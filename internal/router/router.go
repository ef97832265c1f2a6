package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/handler"
	"github.com/sms-project/sms-backend/internal/middleware"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/response"
	"github.com/sms-project/sms-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Student       *handler.StudentHandler
	Enrollment    *handler.EnrollmentHandler
	Attendance    *handler.AttendanceHandler
	Marksheet     *handler.MarksheetHandler
	Assignment    *handler.AssignmentHandler
	Participation *handler.ParticipationHandler
	Dashboard     *handler.DashboardHandler
	Catalog       *handler.CatalogHandler
	Device        *handler.DeviceHandler
	Setting       *handler.SettingHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", handler.HeaderDeviceID}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService)
	checkSession := middleware.CheckSingleDeviceSession(authService)
	studentOnly := middleware.RequireRoles(model.RoleStudent)
	staffOnly := middleware.RequireRoles(model.RoleTeacher, model.RoleAdmin)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Student.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
		auth.GET("/me", requireAuth, handlers.Auth.Me)
	}

	// ─── 2. Device Group (Device Token, No JWT) ────────────────────────
	router.POST("/api/v1/attendance/mark-by-device", handlers.Attendance.MarkByDevice)

	// ─── 3. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1")
	studentAPI.Use(requireAuth, checkSession, studentOnly)
	{
		studentAPI.POST("/attendance/mark", handlers.Attendance.MarkSelf)
		studentAPI.GET("/attendance/detail", handlers.Attendance.Detail)
		studentAPI.GET("/student/dashboard", handlers.Dashboard.OwnDashboard)
		studentAPI.GET("/mark-prediction", handlers.Dashboard.OwnPrediction)
	}

	// ─── 4. Shared Group (Any Authenticated Role) ──────────────────────
	sharedAPI := router.Group("/api/v1")
	sharedAPI.Use(requireAuth, checkSession)
	{
		sharedAPI.GET("/classes", handlers.Catalog.ListClasses)
		sharedAPI.GET("/classes/:id/subjects", handlers.Catalog.ClassSubjects)
		sharedAPI.GET("/subjects", handlers.Catalog.ListSubjects)
		sharedAPI.GET("/assignments", handlers.Assignment.List)
	}

	// ─── 5. Staff Group (Teacher or Admin) ─────────────────────────────
	staffAPI := router.Group("/api/v1")
	staffAPI.Use(requireAuth, staffOnly)
	{
		staffAPI.POST("/attendance/mark-with-status", handlers.Attendance.MarkWithStatus)
		staffAPI.GET("/attendance/class/:id", handlers.Attendance.ClassAttendance)
		staffAPI.GET("/attendance/report/:id", handlers.Attendance.StudentReport)

		staffAPI.PUT("/enrollment/update", handlers.Enrollment.Update)
		staffAPI.GET("/enrollment/student/:id", handlers.Enrollment.ListForStudent)

		staffAPI.POST("/marks", handlers.Marksheet.AddRecords)
		staffAPI.PUT("/marks/:id", handlers.Marksheet.UpdateRecord)
		staffAPI.DELETE("/marks/:id", handlers.Marksheet.DeleteRecord)
		staffAPI.GET("/marks/student/:id", handlers.Marksheet.StudentRecords)

		staffAPI.GET("/exam-types", handlers.Marksheet.ListTypes)
		staffAPI.POST("/exam-types", handlers.Marksheet.CreateType)
		staffAPI.PUT("/exam-types/:id", handlers.Marksheet.UpdateType)
		staffAPI.DELETE("/exam-types/:id", handlers.Marksheet.DeleteType)

		staffAPI.POST("/participation", handlers.Participation.Record)
		staffAPI.PUT("/participation/:id", handlers.Participation.Amend)
		staffAPI.GET("/participation/student/:id", handlers.Participation.StudentRecords)

		staffAPI.POST("/assignments", handlers.Assignment.Create)
		staffAPI.PUT("/assignments/:id", handlers.Assignment.Update)
		staffAPI.DELETE("/assignments/:id", handlers.Assignment.Delete)
		staffAPI.POST("/assignments/:id/grade", handlers.Assignment.Grade)
		staffAPI.PUT("/submissions/:id", handlers.Assignment.Regrade)

		staffAPI.GET("/classes/:id/students", handlers.Student.ListByClass)
		staffAPI.GET("/students/:id", handlers.Student.Get)
		staffAPI.PUT("/students/:id", handlers.Student.Update)

		staffAPI.GET("/dashboard/student/:id", handlers.Dashboard.StudentDashboard)
		staffAPI.GET("/mark-prediction/by-id/:id", handlers.Dashboard.PredictionByID)
	}

	// ─── 6. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1")
	adminAPI.Use(requireAuth, adminOnly)
	{
		adminAPI.POST("/classes", handlers.Catalog.CreateClass)
		adminAPI.DELETE("/classes/:id", handlers.Catalog.DeleteClass)
		adminAPI.POST("/classes/:id/subjects", handlers.Catalog.AssignSubject)
		adminAPI.DELETE("/classes/:id/subjects/:subject_id", handlers.Catalog.RemoveSubject)

		adminAPI.POST("/subjects", handlers.Catalog.CreateSubject)
		adminAPI.PUT("/subjects/:id", handlers.Catalog.UpdateSubject)
		adminAPI.DELETE("/subjects/:id", handlers.Catalog.DeleteSubject)

		adminAPI.GET("/devices", handlers.Device.List)
		adminAPI.POST("/devices", handlers.Device.Register)
		adminAPI.PUT("/devices/:id", handlers.Device.Update)
		adminAPI.DELETE("/devices/:id", handlers.Device.Delete)

		adminAPI.GET("/settings", handlers.Setting.GetAll)
		adminAPI.PUT("/settings", handlers.Setting.Update)

		adminAPI.DELETE("/admin/sessions/:id", handlers.Auth.ResetSession)
	}

	return router
}
