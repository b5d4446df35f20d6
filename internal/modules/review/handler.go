package review

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"coderr/internal/middleware"
	"coderr/internal/pkg/response"
	"coderr/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/reviews/", h.List)
	protected.POST("/reviews/", h.Create)
	protected.PATCH("/reviews/:id/", h.Update)
	protected.DELETE("/reviews/:id/", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filters, err := ParseFilters(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]ReviewResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	response.OK(c, http.StatusOK, out)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.InvalidBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	rv, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toResponse(rv))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.InvalidBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	rv, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toResponse(rv))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	caller, _ := middleware.CallerFrom(c)
	if err := h.svc.Delete(c.Request.Context(), caller, id); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fields validator.FieldErrors
	switch {
	case errors.As(err, &fields):
		response.Validation(c, fields)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, msgNotFound)
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, msgForbidden)
	case errors.Is(err, ErrNotCustomer):
		response.Forbidden(c, msgNotCustomer)
	default:
		zap.L().Error("review request failed", zap.Error(err))
		response.Internal(c)
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, msgNotFound)
		return 0, false
	}
	return id, true
}
