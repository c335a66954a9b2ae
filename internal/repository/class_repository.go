package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ykps/feedback-portal/internal/models"
)

// ClassRepository reads the externally provisioned course sections.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListByTeacher returns classes owned by the given roster teacher.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	const query = `SELECT id, name, teacher_id, created_at FROM classes WHERE teacher_id = $1 ORDER BY name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list classes by teacher: %w", err)
	}
	return classes, nil
}

// ListEligibleForStudent returns classes the student has not reviewed yet.
func (r *ClassRepository) ListEligibleForStudent(ctx context.Context, studentID string) ([]models.Class, error) {
	const query = `SELECT id, name, teacher_id, created_at FROM classes WHERE id NOT IN (SELECT class_id FROM feedbacks WHERE student_id = $1) ORDER BY name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, studentID); err != nil {
		return nil, fmt.Errorf("list eligible classes: %w", err)
	}
	return classes, nil
}
