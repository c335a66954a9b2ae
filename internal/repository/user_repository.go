package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ykps/feedback-portal/internal/models"
)

// UserRepository provides database access for portal accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindBySchoolID returns a user by school identifier.
func (r *UserRepository) FindBySchoolID(ctx context.Context, schoolID string) (*models.User, error) {
	const query = `SELECT id, school_id, name, password_hash, is_teacher, teacher_id, created_at, updated_at FROM users WHERE school_id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, schoolID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by school id: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, school_id, name, password_hash, is_teacher, teacher_id, created_at, updated_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, school_id, name, password_hash, is_teacher, teacher_id, created_at, updated_at) VALUES (:id, :school_id, :name, :password_hash, :is_teacher, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SetTeacherID links a teacher account to its roster identity.
func (r *UserRepository) SetTeacherID(ctx context.Context, userID, teacherID string) error {
	const query = `UPDATE users SET teacher_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, teacherID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set teacher id: %w", err)
	}
	return nil
}
