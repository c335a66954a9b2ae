package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/service"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
)

// ExportHandler serves the feedback export form and file download.
type ExportHandler struct {
	exports   *service.ExportService
	dashboard *service.DashboardService
}

// NewExportHandler constructs an ExportHandler. The dashboard service
// supplies the teacher's class list for the form.
func NewExportHandler(exports *service.ExportService, dashboard *service.DashboardService) *ExportHandler {
	return &ExportHandler{exports: exports, dashboard: dashboard}
}

// ExportPage renders the export form over the teacher's own classes.
func (h *ExportHandler) ExportPage(c *gin.Context) {
	teacher, ok := teacherFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	if !teacher.Matched() {
		c.Redirect(http.StatusFound, matchTeacherPath)
		return
	}

	classes, err := h.dashboard.TeacherHome(c.Request.Context(), teacher)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(classes) == 0 {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	c.HTML(http.StatusOK, "export-feedback.html", gin.H{
		"Principal": teacher,
		"Classes":   classes,
	})
}

// Export produces the snapshot file and streams it back as an attachment.
// An empty class selection or unrecognised format silently returns to the
// form.
func (h *ExportHandler) Export(c *gin.Context) {
	if _, ok := teacherFromContext(c); !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	classIDs := c.PostFormArray("classes")
	format, ok := service.ParseExportFormat(c.PostForm("export-format"))
	if len(classIDs) == 0 || !ok {
		c.Redirect(http.StatusFound, exportPath)
		return
	}

	result, err := h.exports.Generate(c.Request.Context(), classIDs, format)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrValidation) {
			c.Redirect(http.StatusFound, exportPath)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.FileAttachment(result.AbsolutePath, result.Filename)
}
