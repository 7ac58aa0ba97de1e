package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Headers through which the presentation layer tags each request.
const (
	ActorHeader = "X-Actor"
	RoleHeader  = "X-Actor-Role"
)

const (
	actorKey = contextKey("actor")
	roleKey  = contextKey("actorRole")
)

// ActorMiddleware reads the acting collector's name and role tag from request
// headers. Requests without an actor are rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if actor == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Request without actor header")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ActorHeader + " header is required"})
			return
		}
		role := domain.CollectorRole(c.GetHeader(RoleHeader))
		if !role.IsValid() {
			role = domain.RoleCollector
		}

		c.Set(string(actorKey), actor)
		c.Set(string(roleKey), string(role))

		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("actor", actor), slog.String("role", string(role)))
		c.Set(string(loggerKey), logger)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the request is tagged with role.
func RequireRole(role domain.CollectorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := GetRoleFromContext(c); got != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted", slog.String("required_role", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting collector's name from the Gin context.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actor := c.GetString(string(actorKey))
	return actor, actor != ""
}

// GetRoleFromContext retrieves the role tag from the Gin context.
func GetRoleFromContext(c *gin.Context) (domain.CollectorRole, bool) {
	role := c.GetString(string(roleKey))
	return domain.CollectorRole(role), role != ""
}
