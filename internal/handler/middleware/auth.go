package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/handler/httperr"
	"bodyshop/internal/pkg/cookie"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/usecase"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingToken      = errs.Mark(errs.New("access token required"), errs.ErrUnauthenticated)
	ErrInsufficientRole  = errs.Mark(errs.New("insufficient permissions"), errs.ErrPermissionDenied)
	errActorNotInContext = errs.New("actor missing from request context")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxActorKey = "actor"
	ctxTokenKey = "access_token"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// extractToken prefers the HttpOnly cookie and falls back to a bearer header.
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, ErrMissingToken, "Access token required", nil)
			return
		}

		actor, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Token validation failed in auth middleware", "error", err.Error())
			if errs.Is(err, errs.ErrUnauthenticated) {
				httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
				return
			}
			httperr.Respond(c, err)
			return
		}

		c.Set(ctxActorKey, actor)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// wiring error: RequireAuth did not run
			httperr.AbortWithError(c, http.StatusInternalServerError, errActorNotInContext, "Internal server error", nil)
			return
		}
		if !slices.Contains(roles, actor.Role) {
			httperr.AbortWithError(c, http.StatusForbidden, ErrInsufficientRole, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return m.RequireRole(user.RoleStaff, user.RoleAdmin)
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(user.RoleAdmin)
}

func GetActor(c *gin.Context) (user.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return user.Actor{}, false
	}
	actor, ok := v.(user.Actor)
	return actor, ok
}

// SetActor is used by handler tests that bypass token validation.
func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxActorKey, actor)
}

func GetAccessToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
