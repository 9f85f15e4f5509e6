package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/uploads"
)

const (
	rateLimitGroupUpload = "UPLOAD"
	rateLimitGroupRead   = "READ"
	// Reads are cheap; allow this many times the upload rate.
	readRateMultiplier = 10
)

// RouterDeps carries the handlers and settings the router needs.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	UploadHandler   *uploads.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	healthHandler := func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if report.Status != health.StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "ATS Scorer API is running"})
	})
	r.GET("/health", healthHandler)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler)

	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterLegacyRoutes(r)
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	return middleware.RateLimitConfig{
		DefaultGroup: rateLimitGroupRead,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return rateLimitGroupUpload
			}
			if c.FullPath() == "/metrics" {
				return "UNLIMITED"
			}
			return rateLimitGroupRead
		},
		Limiter: deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			rateLimitGroupUpload: {Rate: rps, Burst: burst},
			rateLimitGroupRead:   {Rate: rps * readRateMultiplier, Burst: burst * readRateMultiplier},
		},
	}
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
