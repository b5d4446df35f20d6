package order

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
	protected.GET("/orders/", h.List)
	protected.POST("/orders/", h.Create)
	protected.PATCH("/orders/:id/", h.UpdateStatus)
	protected.DELETE("/orders/:id/", h.Delete)
	protected.GET("/order-count/:business_user_id/", h.OrderCount)
	protected.GET("/completed-order-count/:business_user_id/", h.CompletedOrderCount)
}

func (h *Handler) List(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	items, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	response.OK(c, http.StatusOK, out)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.InvalidBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	o, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toResponse(o))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id", msgNotFound)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.InvalidBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	o, err := h.svc.UpdateStatus(c.Request.Context(), caller, id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", msgNotFound)
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

func (h *Handler) OrderCount(c *gin.Context) {
	id, ok := idParam(c, "business_user_id", msgBusinessNotFound)
	if !ok {
		return
	}

	n, err := h.svc.CountInProgress(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, OrderCountResponse{OrderCount: n})
}

func (h *Handler) CompletedOrderCount(c *gin.Context) {
	id, ok := idParam(c, "business_user_id", msgBusinessNotFound)
	if !ok {
		return
	}

	n, err := h.svc.CountCompleted(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, CompletedOrderCountResponse{CompletedOrderCount: n})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fields validator.FieldErrors
	switch {
	case errors.As(err, &fields):
		response.Validation(c, fields)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, msgNotFound)
	case errors.Is(err, ErrDetailNotFound):
		response.NotFound(c, msgDetailNotFound)
	case errors.Is(err, ErrBusinessNotFound):
		response.NotFound(c, msgBusinessNotFound)
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, msgForbidden)
	case errors.Is(err, ErrNotCustomer):
		response.Forbidden(c, msgNotCustomer)
	case errors.Is(err, ErrNotAdmin):
		response.Forbidden(c, msgNotAdmin)
	default:
		zap.L().Error("order request failed", zap.Error(err))
		response.Internal(c)
	}
}

func idParam(c *gin.Context, name, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, msg)
		return 0, false
	}
	return id, true
}
