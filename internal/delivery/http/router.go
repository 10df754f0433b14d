package http

import (
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Logger              *logger.Logger
	AllowedOrigins      []string
	AuthMiddleware      *middleware.AuthMiddleware
	DistributionHandler *handlers.DistributionHandler
	LeadHandler         *handlers.LeadHandler
	// Gatherer backs /metrics, nil leaves the route out
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/healthcheck", handlers.HealthCheck)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	dh := cfg.DistributionHandler
	lh := cfg.LeadHandler
	auth := cfg.AuthMiddleware

	// Public
	r.GET("/sales", dh.RouteVisitor)
	api := r.Group("/api")
	{
		api.GET("/distribution/public-rules", dh.GetPublicRules)
		api.POST("/phone-numbers/save", lh.SaveLead)
		api.GET("/phone-numbers/check-expired", lh.CheckExpired)
	}

	protected := api.Group("/")
	protected.Use(auth.RequireAuth())
	{
		protected.GET("/distribution/rules", dh.ListRules)
		protected.GET("/distribution/rules/:salesPageId", dh.GetRule)
		protected.POST("/distribution/rules", dh.SaveRules)
		protected.PUT("/distribution/rules", dh.UpdateRule)
		protected.POST("/distribution/rules/reset", dh.ResetRules)
		protected.GET("/distribution/stats", dh.GetStats)
		protected.GET("/distribution/allocation", dh.GetAllocation)
		protected.GET("/distribution/allocation/export", dh.ExportAllocation)

		protected.GET("/phone-numbers/list", lh.ListLeads)
		protected.GET("/phone-numbers/:id", lh.GetLead)
		protected.PATCH("/phone-numbers/:id", lh.UpdateLead)
	}

	admin := protected.Group("/")
	admin.Use(auth.RequireAdmin())
	{
		admin.POST("/phone-numbers/add-manual", lh.AddManualLead)
		admin.POST("/phone-numbers/withdraw", lh.Withdraw)
		admin.PUT("/sales-pages/:pageId/owner", lh.AssignOwner)
	}

	return r
}
