package profile

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"coderr/internal/domain"
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
	protected.GET("/profile/:user_id/", h.Get)
	protected.PATCH("/profile/:user_id/", h.Update)
	protected.GET("/profiles/business/", h.listByType(domain.RoleBusiness))
	protected.GET("/profiles/customer/", h.listByType(domain.RoleCustomer))
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, toResponse(p, h.fileURL(c, p)))
}

func (h *Handler) Update(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	req, file, err := bindUpdate(c)
	if err != nil {
		response.InvalidBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	p, err := h.svc.Update(c.Request.Context(), caller, userID, req, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, toResponse(p, h.fileURL(c, p)))
}

func (h *Handler) listByType(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.ListByType(c.Request.Context(), role)
		if err != nil {
			h.fail(c, err)
			return
		}

		out := make([]ProfileListItem, 0, len(items))
		for i := range items {
			out = append(out, toListItem(&items[i], h.fileURL(c, &items[i])))
		}
		response.OK(c, http.StatusOK, out)
	}
}

func (h *Handler) fileURL(c *gin.Context, p *domain.Profile) *string {
	return response.AbsoluteURL(c, h.svc.FileURL(p.File))
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
	default:
		zap.L().Error("profile request failed", zap.Error(err))
		response.Internal(c)
	}
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, msgNotFound)
		return 0, false
	}
	return id, true
}

// bindUpdate reads a JSON body or a multipart form carrying an optional "file" upload.
func bindUpdate(c *gin.Context) (UpdateProfileRequest, *multipart.FileHeader, error) {
	var req UpdateProfileRequest

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm, gin.MIMEPOSTForm:
		field := func(name string) *string {
			if v, ok := c.GetPostForm(name); ok {
				return &v
			}
			return nil
		}
		req.FirstName = field("first_name")
		req.LastName = field("last_name")
		req.Location = field("location")
		req.Tel = field("tel")
		req.Description = field("description")
		req.WorkingHours = field("working_hours")
		req.Email = field("email")

		fh, err := c.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				return req, nil, nil
			}
			return req, nil, err
		}
		return req, fh, nil
	default:
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, nil, err
		}
		return req, nil, nil
	}
}
