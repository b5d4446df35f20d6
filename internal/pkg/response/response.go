package response

import (
	"net/http"
	"strings"
	"time"

	"coderr/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const TimeLayout = "2006-01-02T15:04:05Z"

// Timestamp renders as UTC with second precision.
type Timestamp time.Time

func Time(t time.Time) Timestamp { return Timestamp(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimeLayout) + `"`), nil
}

func OK(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

func Validation(c *gin.Context, details map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
}

// InvalidBody answers 400 for a request body that could not be decoded.
// Type mismatches name the field in details.
func InvalidBody(c *gin.Context, err error) {
	if fields, ok := validator.BindError(err); ok {
		Validation(c, fields)
		return
	}
	Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided.")
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
}

// BaseURL returns scheme://host of the incoming request.
func BaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

// AbsoluteURL prefixes a site-relative path with the request origin. Nil stays nil.
func AbsoluteURL(c *gin.Context, p *string) *string {
	if p == nil {
		return nil
	}
	if strings.HasPrefix(*p, "http://") || strings.HasPrefix(*p, "https://") {
		return p
	}
	u := BaseURL(c) + "/" + strings.TrimPrefix(*p, "/")
	return &u
}
