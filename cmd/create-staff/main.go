package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sms-project/sms-backend/internal/config"
	"github.com/sms-project/sms-backend/internal/database"
	"github.com/sms-project/sms-backend/internal/logger"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
	"github.com/sms-project/sms-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	authService := service.NewAuthService(cfg, nil)
	accountService := service.NewAccountService(pool, userRepo, enrollmentRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Staff User ===")

	// Name
	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Role
	fmt.Print("Enter Role (teacher/admin, default teacher): ")
	roleStr, _ := reader.ReadString('\n')
	roleStr = strings.TrimSpace(roleStr)
	role := model.RoleTeacher
	if roleStr != "" {
		switch model.Role(roleStr) {
		case model.RoleTeacher, model.RoleAdmin:
			role = model.Role(roleStr)
		default:
			fmt.Println("Error: Role must be teacher or admin")
			return
		}
	}

	// Gender
	fmt.Print("Enter Gender (male/female, default male): ")
	genderStr, _ := reader.ReadString('\n')
	genderStr = strings.TrimSpace(genderStr)
	gender := model.GenderMale
	if genderStr != "" {
		switch model.Gender(genderStr) {
		case model.GenderMale, model.GenderFemale:
			gender = model.Gender(genderStr)
		default:
			fmt.Println("Error: Gender must be male or female")
			return
		}
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := accountService.CreateStaff(ctx, email, name, password, role, gender)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create staff user")
	}

	fmt.Printf("\nSuccess! %s '%s' (%s) created with ID: %d\n", user.Role, user.FullName, user.Email, user.ID)
}
