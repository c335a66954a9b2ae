package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykps/feedback-portal/internal/models"
)

// ContextPrincipalKey is the gin context key storing the resolved principal.
const ContextPrincipalKey = "currentPrincipal"

// LoginPath is where every unauthenticated request to a protected route lands.
const LoginPath = "/login"

type principalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (models.Principal, error)
}

// Session protects routes by requiring a valid session cookie; requests
// without a resolvable principal are redirected to the login page.
func Session(auth principalResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := resolve(c, auth, cookieName)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// OptionalSession attaches the principal when present but never redirects.
func OptionalSession(auth principalResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := resolve(c, auth, cookieName); ok {
			c.Set(ContextPrincipalKey, principal)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, auth principalResolver, cookieName string) (models.Principal, bool) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return nil, false
	}

	principal, err := auth.ResolvePrincipal(c.Request.Context(), token)
	if err != nil {
		return nil, false
	}
	return principal, true
}
