package stats

import (
	"net/http"
	"strconv"

	"coderr/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Rating renders as a JSON number with exactly one decimal, e.g. 0.0 or 4.5.
type Rating float64

func (r Rating) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(r), 'f', 1, 64), nil
}

type BaseInfoResponse struct {
	ReviewCount          int64  `json:"review_count"`
	AverageRating        Rating `json:"average_rating"`
	BusinessProfileCount int64  `json:"business_profile_count"`
	OfferCount           int64  `json:"offer_count"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/base-info/", h.BaseInfo)
}

func (h *Handler) BaseInfo(c *gin.Context) {
	st, err := h.svc.BaseInfo(c.Request.Context())
	if err != nil {
		zap.L().Error("base info failed", zap.Error(err))
		response.Internal(c)
		return
	}

	response.OK(c, http.StatusOK, BaseInfoResponse{
		ReviewCount:          st.ReviewCount,
		AverageRating:        Rating(st.AverageRating),
		BusinessProfileCount: st.BusinessProfileCount,
		OfferCount:           st.OfferCount,
	})
}
