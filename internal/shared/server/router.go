package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/account"
	googleauth "creditdispute-backend/internal/auth"
	"creditdispute-backend/internal/disputes"
	"creditdispute-backend/internal/reports"
	"creditdispute-backend/internal/scan"
	"creditdispute-backend/internal/shared/config"
	"creditdispute-backend/internal/shared/metrics"
	"creditdispute-backend/internal/shared/server/middleware"
	"creditdispute-backend/internal/shared/server/respond"
	"creditdispute-backend/internal/usage"
	"creditdispute-backend/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config         config.Config
	ScanHandler    *scan.Handler
	ReportHandler  *reports.Handler
	DisputeHandler *disputes.Handler
	UsageHandler   *usage.Handler
	UserHandler    *users.Handler
	AccountHandler *account.Handler
	GoogleAuth     *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"SCAN":    {Rate: 0.5, Burst: 3},
				"DEFAULT": {Rate: 10, Burst: 20},
			},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/ai-scan" {
					return "SCAN"
				}
				return "DEFAULT"
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ScanHandler != nil {
		deps.ScanHandler.RegisterRoutes(api)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(api)
	}
	if deps.DisputeHandler != nil {
		deps.DisputeHandler.RegisterRoutes(api)
	}
	if deps.UsageHandler != nil {
		deps.UsageHandler.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" && deps.UsageHandler != nil {
		dev := api.Group("/dev")
		deps.UsageHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
