package routes

import (
	"net/http"

	"github.com/damoang/angple-search/internal/handler"
	"github.com/damoang/angple-search/internal/middleware"
	"github.com/damoang/angple-search/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	searchHandler *handler.SearchHandler,
	healthHandler *handler.HealthHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	rateLimit middleware.RateLimitConfig,
) {
	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", healthHandler.Health)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v2")

	// 검색 (로그인 선택, 토큰이 있으면 권한 반영)
	api.GET("/search",
		middleware.OptionalJWTAuth(jwtManager),
		middleware.RateLimit(redisClient, rateLimit),
		searchHandler.Search,
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "not found"}})
	})
}
