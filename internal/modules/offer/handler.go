package offer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"coderr/internal/middleware"
	"coderr/internal/pkg/pagination"
	"coderr/internal/pkg/response"
	"coderr/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	APIPrefix   string
	PageSize    int
	MaxPageSize int
}

type Handler struct {
	svc  *Service
	opts Options
}

func NewHandler(svc *Service, opts Options) *Handler {
	return &Handler{svc: svc, opts: opts}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/offers/", h.List)
	public.GET("/offers/:id/", h.Get)

	protected.POST("/offers/", h.Create)
	protected.PATCH("/offers/:id/", h.Update)
	protected.DELETE("/offers/:id/", h.Delete)
	protected.GET("/offerdetails/:id/", h.GetDetail)
}

func (h *Handler) List(c *gin.Context) {
	filters, err := ParseFilters(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := pagination.Parse(c, h.opts.PageSize, h.opts.MaxPageSize)
	if err != nil {
		response.NotFound(c, "Invalid page.")
		return
	}
	filters.Limit = page.Size
	filters.Offset = page.Offset()

	items, total, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}

	resolved, err := page.Resolve(c, total)
	if err != nil {
		response.NotFound(c, "Invalid page.")
		return
	}
	if resolved.Page != page.Page {
		// page=last: fetch again at the resolved offset
		filters.Offset = resolved.Offset()
		if items, total, err = h.svc.List(c.Request.Context(), filters); err != nil {
			h.fail(c, err)
			return
		}
	}

	out := make([]SummaryResponse, 0, len(items))
	for i := range items {
		out = append(out, toSummaryResponse(&items[i], h.imageURL(c, items[i].Image), h.detailURL(c)))
	}
	response.OK(c, http.StatusOK, pagination.Build(c, resolved, total, out))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := idParam(c, msgNotFound)
	if !ok {
		return
	}

	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toSummaryResponse(o, h.imageURL(c, o.Image), h.detailURL(c)))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOfferRequest
	image, err := bindOffer(c, &req)
	if err != nil {
		h.badBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	o, err := h.svc.Create(c.Request.Context(), caller, req, image)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, toOfferResponse(o, h.imageURL(c, o.Image)))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := idParam(c, msgNotFound)
	if !ok {
		return
	}

	var req UpdateOfferRequest
	image, err := bindOffer(c, &req)
	if err != nil {
		h.badBody(c, err)
		return
	}

	caller, _ := middleware.CallerFrom(c)
	o, err := h.svc.Update(c.Request.Context(), caller, id, req, image)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toOfferResponse(o, h.imageURL(c, o.Image)))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c, msgNotFound)
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

func (h *Handler) GetDetail(c *gin.Context) {
	id, ok := idParam(c, msgDetailNotFound)
	if !ok {
		return
	}

	d, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, msgDetailNotFound)
			return
		}
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toDetailResponse(d))
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
	case errors.Is(err, ErrNotBusiness):
		response.Forbidden(c, msgNotBusiness)
	default:
		zap.L().Error("offer request failed", zap.Error(err))
		response.Internal(c)
	}
}

func (h *Handler) badBody(c *gin.Context, err error) {
	var fields validator.FieldErrors
	if errors.As(err, &fields) {
		response.Validation(c, fields)
		return
	}
	response.InvalidBody(c, err)
}

func (h *Handler) imageURL(c *gin.Context, name *string) *string {
	return response.AbsoluteURL(c, h.svc.ImageURL(name))
}

func (h *Handler) detailURL(c *gin.Context) func(id int64) string {
	base := response.BaseURL(c) + h.opts.APIPrefix
	return func(id int64) string {
		return fmt.Sprintf("%s/offerdetails/%d/", base, id)
	}
}

func idParam(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, msg)
		return 0, false
	}
	return id, true
}

// bindOffer decodes a JSON body, or a multipart form whose "details" field holds JSON
// and whose "image" part is the optional upload.
func bindOffer(c *gin.Context, dst any) (*multipart.FileHeader, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, nil
	}

	fields := map[string]any{}
	for _, name := range []string{"title", "description"} {
		if v, ok := c.GetPostForm(name); ok {
			fields[name] = v
		}
	}
	if raw, ok := c.GetPostForm("details"); ok && raw != "" {
		var details []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			return nil, validator.Field("details", msgInvalidDetailsField)
		}
		fields["details"] = details
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}
