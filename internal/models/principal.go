package models

// Principal is the authenticated actor behind a request, tagged by role.
// Student and teacher variants carry only the fields valid for that role,
// so a student can never hold a teacher link at the type level.
type Principal interface {
	UserID() string
	DisplayName() string
	principal()
}

// StudentPrincipal identifies an authenticated student.
type StudentPrincipal struct {
	ID       string
	SchoolID string
	Name     string
}

func (p StudentPrincipal) UserID() string      { return p.ID }
func (p StudentPrincipal) DisplayName() string { return p.Name }
func (StudentPrincipal) principal()            {}

// TeacherPrincipal identifies an authenticated teacher. TeacherID is nil
// until the account is matched to a roster teacher.
type TeacherPrincipal struct {
	ID        string
	SchoolID  string
	Name      string
	TeacherID *string
}

func (p TeacherPrincipal) UserID() string      { return p.ID }
func (p TeacherPrincipal) DisplayName() string { return p.Name }
func (TeacherPrincipal) principal()            {}

// Matched reports whether the teacher account has claimed a roster identity.
func (p TeacherPrincipal) Matched() bool { return p.TeacherID != nil }

// PrincipalFromUser builds the tagged principal variant for a user row.
func PrincipalFromUser(user *User) Principal {
	if user.IsTeacher {
		return TeacherPrincipal{ID: user.ID, SchoolID: user.SchoolID, Name: user.Name, TeacherID: user.TeacherID}
	}
	return StudentPrincipal{ID: user.ID, SchoolID: user.SchoolID, Name: user.Name}
}
