package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/middleware"
	"github.com/ykps/feedback-portal/internal/models"
)

// Route targets shared across handlers.
const (
	loginPath        = "/login"
	dashboardPath    = "/dashboard"
	matchTeacherPath = "/match-teacher"
	newFeedbackPath  = "/feedback/new"
	exportPath       = "/feedback/export"
)

func principalFromContext(c *gin.Context) models.Principal {
	value, exists := c.Get(middleware.ContextPrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(models.Principal)
	if !ok {
		return nil
	}
	return principal
}

func studentFromContext(c *gin.Context) (models.StudentPrincipal, bool) {
	student, ok := principalFromContext(c).(models.StudentPrincipal)
	return student, ok
}

func teacherFromContext(c *gin.Context) (models.TeacherPrincipal, bool) {
	teacher, ok := principalFromContext(c).(models.TeacherPrincipal)
	return teacher, ok
}
