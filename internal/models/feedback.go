package models

import "time"

// Feedback is a student's submission about one class. A student holds at
// most one feedback per class; the rule is enforced through the eligible
// class set rather than a storage constraint.
type Feedback struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	Content     string    `db:"content" json:"content"`
	IsAnonymous bool      `db:"is_anonymous" json:"is_anonymous"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FeedbackDetail joins a feedback row with its class name for display.
type FeedbackDetail struct {
	Feedback
	ClassName string `db:"class_name" json:"class_name"`
}

// ExportRow is one line of a feedback export, ordered by class.
type ExportRow struct {
	ClassID     string `db:"class_id"`
	ClassName   string `db:"class_name"`
	StudentName string `db:"student_name"`
	Content     string `db:"content"`
	IsAnonymous bool   `db:"is_anonymous"`
}
