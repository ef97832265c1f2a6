package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/sms-project/sms-backend/internal/model"
	"github.com/sms-project/sms-backend/internal/repository"
)

// PasswordHasher is the slice of the auth service account creation needs.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// AccountService creates and maintains user accounts. Student registration
// spans two tables, so it holds the pool directly and drives the repositories'
// transactional variants.
type AccountService struct {
	pool        *pgxpool.Pool
	users       *repository.UserRepository
	enrollments *repository.EnrollmentRepository
	hasher      PasswordHasher
	log         zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(pool *pgxpool.Pool, users *repository.UserRepository, enrollments *repository.EnrollmentRepository, hasher PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{
		pool:        pool,
		users:       users,
		enrollments: enrollments,
		hasher:      hasher,
		log:         log.With().Str("component", "account_service").Logger(),
	}
}

// RegisterStudent creates a student account together with its initial current
// enrollment in one transaction: if the enrollment insert fails, the account
// does not survive.
func (s *AccountService) RegisterStudent(ctx context.Context, req model.RegisterStudentRequest) (*model.User, error) {
	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         model.RoleStudent,
		Gender:       req.Gender,
		PasswordHash: hash,
		IsActive:     true,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.CreateTx(ctx, tx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err := s.enrollments.PromoteTx(ctx, tx, user.ID, req.ClassLevelID); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Int("class_level_id", req.ClassLevelID).Msg("student registered")
	return user, nil
}

// CreateStaff creates a teacher or admin account.
func (s *AccountService) CreateStaff(ctx context.Context, email, fullName, password string, role model.Role, gender model.Gender) (*model.User, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     fullName,
		Role:         role,
		Gender:       gender,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail resolves an account for login.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves one account.
func (s *AccountService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update modifies an existing account's profile.
func (s *AccountService) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.Gender = req.Gender
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// ListStudentsByClass lists the students currently enrolled in one class.
func (s *AccountService) ListStudentsByClass(ctx context.Context, classLevelID int) ([]model.User, error) {
	return s.users.ListStudentsByClass(ctx, classLevelID)
}
