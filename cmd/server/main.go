package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/database"
	"github.com/sms-project/sms-backend/internal/handler"
	"github.com/sms-project/sms-backend/internal/logger"
	"github.com/sms-project/sms-backend/internal/repository"
	"github.com/sms-project/sms-backend/internal/router"
	"github.com/sms-project/sms-backend/internal/service"
	"github.com/sms-project/sms-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SMS Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	participationRepo := repository.NewParticipationRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	settingService := service.NewSettingService(settingRepo, cfg, log)
	accountService := service.NewAccountService(pool, userRepo, enrollmentRepo, authService, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, deviceRepo, enrollmentService, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, enrollmentService, settingService, log)
	participationService := service.NewParticipationService(participationRepo, enrollmentService, log)
	examService := service.NewExamService(examRepo, enrollmentService, log)
	metricsService := service.NewMetricsService(
		enrollmentService,
		userRepo,
		attendanceService,
		assignmentService,
		participationService,
		examService,
		settingService,
		log,
	)
	catalogService := service.NewCatalogService(classRepo, subjectRepo, log)
	deviceService := service.NewDeviceService(deviceRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(authService, accountService),
		Student:       handler.NewStudentHandler(accountService, enrollmentService),
		Enrollment:    handler.NewEnrollmentHandler(enrollmentService),
		Attendance:    handler.NewAttendanceHandler(attendanceService),
		Marksheet:     handler.NewMarksheetHandler(examService),
		Assignment:    handler.NewAssignmentHandler(assignmentService),
		Participation: handler.NewParticipationHandler(participationService),
		Dashboard:     handler.NewDashboardHandler(metricsService),
		Catalog:       handler.NewCatalogHandler(catalogService),
		Device:        handler.NewDeviceHandler(deviceService),
		Setting:       handler.NewSettingHandler(settingService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
