package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/database"
	"github.com/sms-project/sms-backend/internal/logger"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
	"github.com/sms-project/sms-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)

	authService := service.NewAuthService(cfg, nil)
	accountService := service.NewAccountService(pool, userRepo, enrollmentRepo, authService, log)
	catalogService := service.NewCatalogService(classRepo, subjectRepo, log)
	deviceService := service.NewDeviceService(deviceRepo, log)

	fmt.Println("=== Seeding demo data ===")

	// Class levels 1..10.
	classIDs := make(map[int]int)
	for level := 1; level <= 10; level++ {
		class, err := catalogService.CreateClass(ctx, level)
		if err != nil {
			if err == service.ErrDuplicateRecord {
				fmt.Printf("Class level %d already exists, skipping\n", level)
				continue
			}
			log.Fatal().Err(err).Int("level", level).Msg("Failed to create class level")
		}
		classIDs[level] = class.ID
	}

	// Subjects.
	subjectNames := []string{"Mathematics", "Science", "English", "History", "Geography", "Computer Science"}
	subjectIDs := make([]int, 0, len(subjectNames))
	for _, name := range subjectNames {
		subject, err := catalogService.CreateSubject(ctx, name)
		if err != nil {
			if err == service.ErrDuplicateRecord {
				fmt.Printf("Subject %q already exists, skipping\n", name)
				continue
			}
			log.Fatal().Err(err).Str("name", name).Msg("Failed to create subject")
		}
		subjectIDs = append(subjectIDs, subject.ID)
	}

	// Every class teaches every subject; the demo does not model electives.
	for _, classID := range classIDs {
		for _, subjectID := range subjectIDs {
			if err := catalogService.AssignSubject(ctx, classID, subjectID); err != nil {
				log.Fatal().Err(err).Msg("Failed to assign subject")
			}
		}
	}

	// One check-in device.
	device, err := deviceService.Register(ctx, model.CreateDeviceRequest{Name: "Main Gate Scanner"})
	if err != nil && err != service.ErrDuplicateRecord {
		log.Fatal().Err(err).Msg("Failed to register device")
	}
	if device != nil {
		fmt.Printf("Device registered with token: %s\n", device.DeviceID)
	}

	// Demo students spread over class levels 5 and 6.
	names := []struct {
		name   string
		gender model.Gender
	}{
		{"Aarav Sharma", model.GenderMale},
		{"Diya Patel", model.GenderFemale},
		{"Ishaan Gupta", model.GenderMale},
		{"Meera Nair", model.GenderFemale},
		{"Rohan Verma", model.GenderMale},
		{"Sana Khan", model.GenderFemale},
		{"Vikram Rao", model.GenderMale},
		{"Zara Ahmed", model.GenderFemale},
		{"Kabir Singh", model.GenderMale},
		{"Anaya Iyer", model.GenderFemale},
	}

	created := 0
	for i, n := range names {
		level := 5 + i%2
		classID, ok := classIDs[level]
		if !ok {
			continue
		}
		req := model.RegisterStudentRequest{
			Email:        fmt.Sprintf("student%02d@example.com", i+1),
			FullName:     n.name,
			Gender:       n.gender,
			Password:     "student123",
			ClassLevelID: classID,
		}
		if _, err := accountService.RegisterStudent(ctx, req); err != nil {
			if err == service.ErrEmailTaken {
				fmt.Printf("Student %s already exists, skipping\n", req.Email)
				continue
			}
			log.Fatal().Err(err).Str("email", req.Email).Msg("Failed to register student")
		}
		created++
	}

	fmt.Printf("Seeded %d classes, %d subjects, %d students\n", len(classIDs), len(subjectIDs), created)
}
