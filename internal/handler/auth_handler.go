package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ykps/feedback-portal/internal/service"
)

const loginFailureMessage = "Incorrect credentials!"

// AuthHandler wires the login, logout and entry routes.
type AuthHandler struct {
	service    *service.AuthService
	logger     *zap.Logger
	cookieName string
	cookieTTL  time.Duration
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, logger *zap.Logger, cookieName string, cookieTTL time.Duration) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, logger: logger, cookieName: cookieName, cookieTTL: cookieTTL}
}

// Index redirects to the dashboard for authenticated visitors and to the
// login page for everyone else.
func (h *AuthHandler) Index(c *gin.Context) {
	if principalFromContext(c) != nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

// LoginPage renders the login form, bouncing already-authenticated users.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if principalFromContext(c) != nil {
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the submitted form credentials. Every failure path
// renders the same generic message; a success sets the session cookie and
// sends first-time teachers to the match step.
func (h *AuthHandler) Login(c *gin.Context) {
	req := service.LoginRequest{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"LoginMsg": loginFailureMessage})
		return
	}

	token, err := h.service.IssueSession(user)
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		c.HTML(http.StatusOK, "login.html", gin.H{"LoginMsg": loginFailureMessage})
		return
	}

	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", false, true)

	if user.IsTeacher && user.TeacherID == nil {
		c.Redirect(http.StatusFound, matchTeacherPath)
		return
	}
	c.Redirect(http.StatusFound, dashboardPath)
}

// Logout revokes the session server-side, clears the cookie and returns
// to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		if err := h.service.RevokeSession(c.Request.Context(), token); err != nil {
			h.logger.Warn("failed to revoke session", zap.Error(err))
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, loginPath)
}
