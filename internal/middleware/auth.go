package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/pkg/jwt"
	"coderr/internal/pkg/response"
	"coderr/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerKey = "caller"

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID int64) (*domain.Caller, error)
}

// Authenticate resolves the bearer token into a Caller once per request.
// Requests without an Authorization header pass through anonymously; a bad header is rejected.
func Authenticate(tokens TokenValidator, callers CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}

		// Ожидаем формат: Bearer <token>
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid authorization header")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		caller, err := callers.ResolveCaller(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "User not found")
				return
			}
			zap.L().Error("resolve caller", zap.Int64("user_id", claims.UserID), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerFrom(c); !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided.")
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by Authenticate.
func CallerFrom(c *gin.Context) (*domain.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	caller, ok := v.(*domain.Caller)
	return caller, ok && caller != nil
}

// SetCaller stores caller under the keys read by CallerFrom and the request logger.
func SetCaller(c *gin.Context, caller *domain.Caller) {
	c.Set(callerKey, caller)
	c.Set("user_id", caller.UserID)
	c.Set("role", string(caller.Role))
}
