package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/models"
	"github.com/ykps/feedback-portal/internal/service"
)

// DashboardHandler renders the role-specific landing page.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Dashboard shows a teacher their classes and a student their feedback.
// An unmatched teacher is sent to the match step first.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	switch principal := principalFromContext(c).(type) {
	case models.TeacherPrincipal:
		if !principal.Matched() {
			c.Redirect(http.StatusFound, matchTeacherPath)
			return
		}
		classes, err := h.service.TeacherHome(c.Request.Context(), principal)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.HTML(http.StatusOK, "teacher-dashboard.html", gin.H{
			"Principal": principal,
			"Classes":   classes,
		})
	case models.StudentPrincipal:
		feedbacks, err := h.service.StudentHome(c.Request.Context(), principal)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.HTML(http.StatusOK, "student-dashboard.html", gin.H{
			"Principal": principal,
			"Feedbacks": feedbacks,
		})
	default:
		c.Redirect(http.StatusFound, loginPath)
	}
}
