package api

import (
	"database/sql"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

const appVersion = "1.0.0"

type HealthHandler struct {
	db      *sql.DB
	rdb     *redis.Client
	started time.Time
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, started: time.Now()}
}

// Check always answers 200 while the process is up --> GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":  "ok",
		"version": appVersion,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready answers 503 until the database accepts queries. Redis is
// reported but never fails readiness; the app degrades without it.
// --> GET /health/ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{}
	status := "ready"
	code := 200

	if _, err := h.db.ExecContext(ctx, "SELECT 1"); err != nil {
		checks["database"] = "down"
		status = "degraded"
		code = 503
	} else {
		checks["database"] = "up"
	}

	if h.rdb == nil {
		checks["redis"] = "not configured"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		checks["redis"] = "down"
	} else {
		checks["redis"] = "up"
	}

	return c.JSON(code, map[string]any{"status": status, "checks": checks})
}

// Live is the liveness probe --> GET /health/live
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "alive"})
}
