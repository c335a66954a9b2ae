package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ykps/feedback-portal/internal/models"
)

// TeacherRepository manages access to the staff roster.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, name, created_at FROM teachers WHERE id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by id: %w", err)
	}
	return &teacher, nil
}

// ListUnlinked returns teachers not yet claimed by any user account.
func (r *TeacherRepository) ListUnlinked(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, name, created_at FROM teachers WHERE id NOT IN (SELECT teacher_id FROM users WHERE teacher_id IS NOT NULL) ORDER BY name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list unlinked teachers: %w", err)
	}
	return teachers, nil
}
