package auth

import (
	"errors"
	"net/http"

	"coderr/internal/pkg/response"
	"coderr/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/registration/", h.Register)
	public.POST("/login/", h.Login)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fields validator.FieldErrors
	switch {
	case errors.As(err, &fields):
		response.Validation(c, fields)
	case errors.Is(err, ErrInvalidCredentials):
		response.Validation(c, map[string]string{"non_field_errors": msgInvalidCredentials})
	default:
		zap.L().Error("auth request failed", zap.Error(err))
		response.Internal(c)
	}
}
