package models

import "time"

// Class is a course section owned by a teacher. Classes are provisioned
// externally and read-only from the portal's perspective.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
