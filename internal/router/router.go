package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"beachtrack/internal/handler"
	"beachtrack/internal/middleware"
	"beachtrack/internal/port"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Import         *handler.ImportHandler
	Profile        *handler.ProfileHandler
	Activity       *handler.ActivityHandler
	Recommendation *handler.RecommendationHandler
	Health         *handler.HealthHandler
}

// Options holds the cross-cutting settings for Setup.
type Options struct {
	AllowedOrigins []string
	// RecommendationLimiter throttles POST /recommendations per user. Nil disables it.
	RecommendationLimiter *middleware.UserRateLimiter
	EnableSwagger         bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(verifier port.TokenVerifier, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Every API route requires a bearer token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(verifier))

	imports := v1.Group("/pdf-import")
	imports.POST("/import/:profileType", h.Import.Import)
	imports.POST("/detect", h.Import.Detect)
	imports.GET("/history", h.Import.History)
	imports.GET("/profile/:profileType", h.Import.GetSourceProfile)
	imports.GET("/profile/:profileType/archive", h.Import.ArchiveURL)
	imports.POST("/me-next", h.Import.GenerateMeNext)

	profile := v1.Group("/profile")
	profile.GET("", h.Profile.Get)
	profile.PUT("", h.Profile.Update)
	profile.GET("/:userId", h.Profile.GetByUserID)

	activities := v1.Group("/activities")
	activities.POST("", h.Activity.Create)
	activities.GET("", h.Activity.List)
	activities.GET("/export", h.Activity.Export)

	recs := v1.Group("/recommendations")
	generate := []gin.HandlerFunc{h.Recommendation.Generate}
	if opts.RecommendationLimiter != nil {
		generate = append([]gin.HandlerFunc{middleware.RateLimit(opts.RecommendationLimiter)}, generate...)
	}
	recs.POST("", generate...)
	recs.GET("", h.Recommendation.History)

	return r
}
