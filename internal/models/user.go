package models

import "time"

// User represents a portal account created on first successful login.
// A non-teacher user never carries a teacher link; a teacher user's link
// stays nil until the match step sets it once.
type User struct {
	ID           string    `db:"id" json:"id"`
	SchoolID     string    `db:"school_id" json:"school_id"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsTeacher    bool      `db:"is_teacher" json:"is_teacher"`
	TeacherID    *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
