package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
)

// ContextUser is the gin context key holding the authenticated *entity.User.
const ContextUser = "currentUser"

const bearerScheme = "Bearer"

// UserResolver resolves a bearer token into the authenticated user.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that resolves the bearer token
// and restricts access to authenticated users only.
func AuthRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		// 2. Validate the token and load the user it names
		user, err := resolver.ResolveUser(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				slog.Warn("authentication failed", "remote_addr", c.ClientIP(), "path", c.FullPath())
				abortUnauthenticated(c)
				return
			}
			slog.Error("failed to resolve user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
			return
		}

		// 3. Pass control to the next handler
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

// bearerToken extracts the credentials of a Bearer Authorization header.
// The scheme name is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrUnauthenticated.Error()})
}
