package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ykps/feedback-portal/internal/models"
)

type resolverStub struct {
	principal models.Principal
	err       error
	lastToken string
}

func (s *resolverStub) ResolvePrincipal(ctx context.Context, token string) (models.Principal, error) {
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

const cookieName = "portal_session"

func performRequest(handler gin.HandlerFunc, cookie string) (*httptest.ResponseRecorder, models.Principal) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seen models.Principal
	router.GET("/protected", handler, func(c *gin.Context) {
		if value, exists := c.Get(ContextPrincipalKey); exists {
			seen = value.(models.Principal)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionWithoutCookieRedirects(t *testing.T) {
	resolver := &resolverStub{}
	rec, _ := performRequest(Session(resolver, cookieName), "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.Empty(t, resolver.lastToken)
}

func TestSessionInvalidTokenRedirects(t *testing.T) {
	resolver := &resolverStub{err: errors.New("invalid session")}
	rec, _ := performRequest(Session(resolver, cookieName), "bad-token")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.Equal(t, "bad-token", resolver.lastToken)
}

func TestSessionAttachesPrincipal(t *testing.T) {
	student := models.StudentPrincipal{ID: "u1", SchoolID: "s12345", Name: "Alice"}
	resolver := &resolverStub{principal: student}
	rec, seen := performRequest(Session(resolver, cookieName), "token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, student, seen)
}

func TestOptionalSessionNeverRedirects(t *testing.T) {
	resolver := &resolverStub{err: errors.New("invalid session")}
	rec, seen := performRequest(OptionalSession(resolver, cookieName), "bad-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)

	rec, seen = performRequest(OptionalSession(&resolverStub{}, cookieName), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)
}
