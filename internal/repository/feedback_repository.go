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

// FeedbackRepository manages persistence for student feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FindByID fetches a feedback row by ID.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	const query = `SELECT id, student_id, class_id, content, is_anonymous, created_at, updated_at FROM feedbacks WHERE id = $1 LIMIT 1`
	var feedback models.Feedback
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback by id: %w", err)
	}
	return &feedback, nil
}

// ListByStudent returns a student's feedback rows with class names resolved.
func (r *FeedbackRepository) ListByStudent(ctx context.Context, studentID string) ([]models.FeedbackDetail, error) {
	const query = `SELECT f.id, f.student_id, f.class_id, f.content, f.is_anonymous, f.created_at, f.updated_at, c.name AS class_name
		FROM feedbacks f JOIN classes c ON c.id = f.class_id
		WHERE f.student_id = $1 ORDER BY c.name ASC`
	var feedbacks []models.FeedbackDetail
	if err := r.db.SelectContext(ctx, &feedbacks, query, studentID); err != nil {
		return nil, fmt.Errorf("list feedback by student: %w", err)
	}
	return feedbacks, nil
}

// Create inserts a new feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now
	}
	feedback.UpdatedAt = now

	const query = `INSERT INTO feedbacks (id, student_id, class_id, content, is_anonymous, created_at, updated_at) VALUES (:id, :student_id, :class_id, :content, :is_anonymous, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a feedback row.
func (r *FeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	feedback.UpdatedAt = time.Now().UTC()
	const query = `UPDATE feedbacks SET class_id = :class_id, content = :content, is_anonymous = :is_anonymous, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

// Delete removes a feedback row.
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM feedbacks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

// ExportRows returns feedback for the requested classes joined with class
// and student names, ordered by class id ascending.
func (r *FeedbackRepository) ExportRows(ctx context.Context, classIDs []string) ([]models.ExportRow, error) {
	const base = `SELECT f.class_id, c.name AS class_name, u.name AS student_name, f.content, f.is_anonymous
		FROM feedbacks f
		JOIN classes c ON c.id = f.class_id
		JOIN users u ON u.id = f.student_id
		WHERE f.class_id IN (?) ORDER BY f.class_id ASC`

	query, args, err := sqlx.In(base, classIDs)
	if err != nil {
		return nil, fmt.Errorf("build export query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.ExportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select export rows: %w", err)
	}
	return rows, nil
}
