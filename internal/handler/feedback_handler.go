package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/service"
	appErrors "github.com/ykps/feedback-portal/pkg/errors"
)

// Delete endpoint result codes. The delete route answers JSON because the
// dashboard calls it asynchronously, unlike the form-driven routes.
const (
	deleteCodeOK        = 0
	deleteCodeNotFound  = 1
	deleteCodeForbidden = 2
)

// FeedbackHandler serves the student-owned feedback lifecycle routes.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// NewPage renders the feedback form over the student's eligible classes.
// With nothing left to review the student lands back on the dashboard.
func (h *FeedbackHandler) NewPage(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	classes, err := h.service.EligibleClasses(c.Request.Context(), student)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(classes) == 0 {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	c.HTML(http.StatusOK, "new-feedback.html", gin.H{
		"Principal": student,
		"Classes":   classes,
	})
}

// Create inserts a feedback row for the student.
func (h *FeedbackHandler) Create(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	req := feedbackRequestFromForm(c)
	if _, err := h.service.Create(c.Request.Context(), student, req); err != nil {
		if appErrors.Is(err, appErrors.ErrValidation) {
			c.Redirect(http.StatusFound, newFeedbackPath)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, dashboardPath)
}

// EditPage renders the edit form for an owned feedback row. The current
// class is carried separately from the still-eligible set, which by
// definition no longer contains it.
func (h *FeedbackHandler) EditPage(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	feedback, err := h.service.GetOwned(c.Request.Context(), student, c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	classes, err := h.service.EligibleClasses(c.Request.Context(), student)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "edit-feedback.html", gin.H{
		"Principal": student,
		"Current":   feedback,
		"Classes":   classes,
	})
}

// Update overwrites an owned feedback row.
func (h *FeedbackHandler) Update(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	id := c.Param("id")
	req := feedbackRequestFromForm(c)
	if err := h.service.Update(c.Request.Context(), student, id, req); err != nil {
		switch {
		case appErrors.Is(err, appErrors.ErrValidation):
			c.Redirect(http.StatusFound, "/feedback/edit/"+id)
		case appErrors.Is(err, appErrors.ErrNotFound):
			c.Redirect(http.StatusFound, dashboardPath)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Redirect(http.StatusFound, dashboardPath)
}

// Delete removes an owned feedback row, answering the numeric JSON codes:
// 0 deleted, 1 not found (or not owned), 2 forbidden for teachers. The
// teacher branch never touches storage.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"code": deleteCodeForbidden})
		return
	}

	if err := h.service.Delete(c.Request.Context(), student, c.PostForm("id")); err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": deleteCodeNotFound})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": deleteCodeOK})
}

// feedbackRequestFromForm reads the shared feedback form fields. The
// anonymity checkbox follows the browser convention: "on" means checked.
func feedbackRequestFromForm(c *gin.Context) service.FeedbackRequest {
	return service.FeedbackRequest{
		ClassID:     c.PostForm("feedback-class"),
		Content:     c.PostForm("feedback-content"),
		IsAnonymous: c.PostForm("feedback-anonymous") == "on",
	}
}
