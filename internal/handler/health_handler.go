package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/damoang/angple-search/internal/common"
	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger a dependency that can report liveness
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CacheChecker optional cache dependency (cache.Service satisfies it)
type CacheChecker interface {
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// HealthHandler liveness and store reachability
type HealthHandler struct {
	db    Pinger
	cache CacheChecker
}

// NewHealthHandler creates a new HealthHandler. Both dependencies may be nil.
func NewHealthHandler(db Pinger, cacheSvc CacheChecker) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheSvc}
}

// Health GET /health
// The store is required; Redis is only reported since search runs without it.
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			common.V2ErrorResponse(c, http.StatusServiceUnavailable, "Database unreachable", common.ErrStoreUnavailable)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "angple-search",
		"redis":   h.redisStatus(c.Request.Context()),
		"time":    time.Now().Unix(),
	})
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.cache == nil || !h.cache.IsAvailable() {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		return "down"
	}
	return "ok"
}
