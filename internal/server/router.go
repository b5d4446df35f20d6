package server

import (
	"strings"

	"coderr/internal/config"
	"coderr/internal/middleware"
	"coderr/internal/modules/auth"
	"coderr/internal/modules/offer"
	"coderr/internal/modules/order"
	"coderr/internal/modules/profile"
	"coderr/internal/modules/review"
	"coderr/internal/modules/stats"
	"coderr/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, svc *Services, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found.")
	})

	if strings.HasPrefix(cfg.MediaURL, "/") {
		r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), cfg.MediaRoot)
	}

	// base-info ignores credentials entirely
	stats.NewHandler(svc.Stats).RegisterRoutes(r.Group(cfg.APIPrefix))

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Authenticate(svc.Tokens, svc.Users))

	public := api.Group("")
	protected := api.Group("")
	protected.Use(middleware.RequireAuth())

	auth.NewHandler(svc.Auth).RegisterRoutes(public)

	offer.NewHandler(svc.Offers, offer.Options{
		APIPrefix:   cfg.APIPrefix,
		PageSize:    cfg.OffersPageSize,
		MaxPageSize: cfg.OffersMaxPageSize,
	}).RegisterRoutes(public, protected)

	order.NewHandler(svc.Orders).RegisterRoutes(protected)
	review.NewHandler(svc.Reviews).RegisterRoutes(protected)
	profile.NewHandler(svc.Profiles).RegisterRoutes(protected)

	return r
}
