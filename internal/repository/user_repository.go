package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sms-project/sms-backend/internal/model"
)

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, full_name, role, gender, password_hash, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Gender, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, full_name, role, gender, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.FullName, u.Role, u.Gender, u.PasswordHash, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// CreateTx inserts a new user inside an existing transaction. Registration
// uses it so the account disappears with the transaction if a dependent
// record fails validation.
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, u *model.User) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO users (email, full_name, role, gender, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.FullName, u.Role, u.Gender, u.PasswordHash, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// Update modifies a user's basic info (excluding password).
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, full_name = $2, gender = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5`,
		u.Email, u.FullName, u.Gender, u.IsActive, u.ID,
	)
	return mapError(err)
}

// UpdatePassword updates a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	return mapError(err)
}

// Delete removes a user by ID. Dependent ledger rows cascade with it.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return mapError(err)
}

// ListStudentsByClass retrieves students currently enrolled in a class level.
func (r *UserRepository) ListStudentsByClass(ctx context.Context, classLevelID int) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+prefixedUserColumns("u")+`
		 FROM users u
		 JOIN enrollments e ON e.student_id = u.id AND e.is_current
		 WHERE u.role = 'student' AND e.class_level_id = $1
		 ORDER BY u.full_name`, classLevelID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Gender, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.email, ` + alias + `.full_name, ` + alias + `.role, ` +
		alias + `.gender, ` + alias + `.password_hash, ` + alias + `.is_active, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
