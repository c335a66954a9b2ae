package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ykps/feedback-portal/internal/models"
	"github.com/ykps/feedback-portal/internal/service"
)

type unlinkedTeacherStub struct {
	teachers []models.Teacher
}

func (s *unlinkedTeacherStub) ListUnlinked(ctx context.Context) ([]models.Teacher, error) {
	return s.teachers, nil
}

type teacherLinkStub struct {
	linked map[string]string
}

func (s *teacherLinkStub) SetTeacherID(ctx context.Context, userID, teacherID string) error {
	if s.linked == nil {
		s.linked = make(map[string]string)
	}
	s.linked[userID] = teacherID
	return nil
}

func newTeacherHandler(teachers *unlinkedTeacherStub, users *teacherLinkStub) *TeacherHandler {
	return NewTeacherHandler(service.NewTeacherService(teachers, users, nil))
}

func TestMatchLinksTeacher(t *testing.T) {
	users := &teacherLinkStub{}
	handler := newTeacherHandler(&unlinkedTeacherStub{teachers: []models.Teacher{{ID: "t1"}}}, users)

	c, rec := newTestContext(t, testTeacher, url.Values{"teacher-id": {"t1"}})
	handler.Match(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, dashboardPath, rec.Header().Get("Location"))
	assert.Equal(t, "t1", users.linked["u2"])
}

func TestMatchUnavailableTeacherBouncesToForm(t *testing.T) {
	users := &teacherLinkStub{}
	handler := newTeacherHandler(&unlinkedTeacherStub{teachers: []models.Teacher{{ID: "t1"}}}, users)

	c, rec := newTestContext(t, testTeacher, url.Values{"teacher-id": {"t9"}})
	handler.Match(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, matchTeacherPath, rec.Header().Get("Location"))
	assert.Empty(t, users.linked)
}

func TestMatchPageRejectsMatchedTeacher(t *testing.T) {
	handler := newTeacherHandler(&unlinkedTeacherStub{}, &teacherLinkStub{})

	c, rec := newTestContext(t, matchedTeacher(), nil)
	handler.MatchPage(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, dashboardPath, rec.Header().Get("Location"))
}

func TestMatchPageRejectsStudents(t *testing.T) {
	handler := newTeacherHandler(&unlinkedTeacherStub{}, &teacherLinkStub{})

	c, rec := newTestContext(t, testStudent, nil)
	handler.MatchPage(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, dashboardPath, rec.Header().Get("Location"))
}

func TestMatchPageRendersUnlinkedRoster(t *testing.T) {
	handler := newTeacherHandler(&unlinkedTeacherStub{teachers: []models.Teacher{{ID: "t1", Name: "Mr. Smith"}}}, &teacherLinkStub{})

	c, rec := newTestContext(t, testTeacher, nil, "match-teacher.html")
	handler.MatchPage(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}
