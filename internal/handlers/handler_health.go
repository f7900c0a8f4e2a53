package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// healthHandler answers liveness and readiness probes.
type healthHandler struct {
	pool      *pgxpool.Pool
	startedAt time.Time
}

func newHealthHandler(pool *pgxpool.Pool) *healthHandler {
	return &healthHandler{pool: pool, startedAt: time.Now()}
}

// registerHealthRoutes registers the public health endpoints.
func registerHealthRoutes(r *gin.Engine, pool *pgxpool.Pool) {
	h := newHealthHandler(pool)
	r.GET("/health", h.health)
	r.GET("/health/detailed", h.healthDetailed)
}

// health godoc
// @Summary Liveness check
// @Tags health
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *healthHandler) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// healthDetailed godoc
// @Summary Readiness check
// @Description Reports database connectivity and process stats.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health/detailed [get]
func (h *healthHandler) healthDetailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	overall := "ok"
	dbStatus := "up"
	status := http.StatusOK
	if err := h.pool.Ping(ctx); err != nil {
		overall = "degraded"
		dbStatus = "down: " + err.Error()
		status = http.StatusServiceUnavailable
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(status, gin.H{
		"status":   overall,
		"uptime":   time.Since(h.startedAt).String(),
		"database": dbStatus,
		"runtime": gin.H{
			"goroutines":    runtime.NumGoroutine(),
			"heap_alloc_mb": mem.HeapAlloc / 1024 / 1024,
			"num_gc":        mem.NumGC,
			"go_max_procs":  runtime.GOMAXPROCS(0),
		},
	})
}
