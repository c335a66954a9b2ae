package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/service"
)

// TeacherHandler serves the one-time teacher matching step.
type TeacherHandler struct {
	service *service.TeacherService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(svc *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// MatchPage renders the unlinked roster teachers for an unmatched teacher
// principal; anyone else is sent to the dashboard.
func (h *TeacherHandler) MatchPage(c *gin.Context) {
	teacher, ok := teacherFromContext(c)
	if !ok || teacher.Matched() {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	teachers, err := h.service.UnlinkedTeachers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "match-teacher.html", gin.H{
		"Principal": teacher,
		"Teachers":  teachers,
	})
}

// Match links the principal to the chosen roster teacher. A submitted ID
// outside the unlinked set bounces back to the form without persisting.
func (h *TeacherHandler) Match(c *gin.Context) {
	teacher, ok := teacherFromContext(c)
	if !ok || teacher.Matched() {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	if err := h.service.Match(c.Request.Context(), teacher, c.PostForm("teacher-id")); err != nil {
		c.Redirect(http.StatusFound, matchTeacherPath)
		return
	}
	c.Redirect(http.StatusFound, dashboardPath)
}
