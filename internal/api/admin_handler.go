package api

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
	"github.com/shaktiaryan/wildlife-gallery/internal/seed"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type AdminHandler struct {
	userService     *service.UserService
	creatureService *service.CreatureService
	feedbackService *service.FeedbackService
	imageService    *service.ImageService
	activity        *service.ActivityService
	creatureRepo    *repository.CreatureRepository
	imageRepo       *repository.ImageRepository
	seeder          *seed.Seeder
	db              *sql.DB
	rdb             *redis.Client
}

func NewAdminHandler(
	userService *service.UserService,
	creatureService *service.CreatureService,
	feedbackService *service.FeedbackService,
	imageService *service.ImageService,
	activity *service.ActivityService,
	creatureRepo *repository.CreatureRepository,
	imageRepo *repository.ImageRepository,
	seeder *seed.Seeder,
	db *sql.DB,
	rdb *redis.Client,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		creatureService: creatureService,
		feedbackService: feedbackService,
		imageService:    imageService,
		activity:        activity,
		creatureRepo:    creatureRepo,
		imageRepo:       imageRepo,
		seeder:          seeder,
		db:              db,
		rdb:             rdb,
	}
}

func (h *AdminHandler) logAdmin(c echo.Context, action, details string) {
	sess := CurrentSession(c)
	if sess == nil {
		return
	}
	userID := sess.Data.UserID
	h.activity.Log(&userID, sess.Data.Username, action, details, c.RealIP(), c.Request().UserAgent())
}

// Dashboard aggregates entity counts and recent activity --> GET /admin
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	counts := map[string]int{}
	for name, count := range map[string]func() (int, error){
		"users":      func() (int, error) { return h.userService.UserCount(ctx) },
		"admins":     func() (int, error) { return h.userService.AdminCount(ctx) },
		"categories": func() (int, error) { return h.creatureService.CategoryCount(ctx) },
		"creatures":  func() (int, error) { return h.creatureService.CreatureCount(ctx) },
		"feedback":   func() (int, error) { return h.feedbackService.FeedbackCount(ctx) },
		"images":     func() (int, error) { return h.imageRepo.CountImages(ctx) },
		"logs":       func() (int, error) { return h.activity.LogCount(ctx) },
	} {
		n, err := count()
		if err != nil {
			return errorJSON(c, err)
		}
		counts[name] = n
	}

	stats, err := h.activity.Stats(ctx, 7)
	if err != nil {
		return errorJSON(c, err)
	}
	recent, err := h.activity.RecentLogs(ctx, 10, 0)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_DASHBOARD_VIEW", "")

	return c.JSON(200, map[string]any{
		"stats":          counts,
		"activity_stats": stats,
		"recent_logs":    recent,
	})
}

// Health reports DB and cache status with latencies --> GET /admin/health
func (h *AdminHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	dbHealth := map[string]any{"status": "error"}
	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		dbHealth["message"] = "Not connected"
	} else {
		poolStats := h.db.Stats()
		dbHealth["status"] = "healthy"
		dbHealth["latency"] = time.Since(start).String()
		dbHealth["pool"] = map[string]int{
			"open":    poolStats.OpenConnections,
			"in_use":  poolStats.InUse,
			"idle":    poolStats.Idle,
			"waiting": int(poolStats.WaitCount),
		}
	}

	redisHealth := map[string]any{"status": "error"}
	if h.rdb != nil {
		start = time.Now()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			redisHealth["message"] = "Not connected"
		} else {
			redisHealth["status"] = "healthy"
			redisHealth["latency"] = time.Since(start).String()
			if stats, err := h.imageService.CacheStats(ctx); err == nil {
				redisHealth["cached_images"] = stats.CachedImages
				redisHealth["memory_used"] = stats.MemoryUsed
			}
		}
	} else {
		redisHealth["message"] = "Not configured"
	}

	h.logAdmin(c, "ADMIN_HEALTH_VIEW", "")

	return c.JSON(200, map[string]any{"database": dbHealth, "redis": redisHealth})
}

// Logs lists the audit trail, newest first --> GET /admin/logs
func (h *AdminHandler) Logs(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	const limit = 50

	total, err := h.activity.LogCount(ctx)
	if err != nil {
		return errorJSON(c, err)
	}
	logs, err := h.activity.RecentLogs(ctx, limit, (page-1)*limit)
	if err != nil {
		return errorJSON(c, err)
	}
	stats, err := h.activity.Stats(ctx, 7)
	if err != nil {
		return errorJSON(c, err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return c.JSON(200, map[string]any{
		"logs":           logs,
		"activity_stats": stats,
		"pagination":     map[string]int{"page": page, "total_pages": totalPages, "total_logs": total},
	})
}

// CleanLogs applies the retention window --> POST /admin/logs/clean
func (h *AdminHandler) CleanLogs(c echo.Context) error {
	req := struct {
		Days int `json:"days" form:"days"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if req.Days < 1 {
		req.Days = 30
	}

	deleted, err := h.activity.CleanOldLogs(c.Request().Context(), req.Days)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_LOGS_CLEAN", fmt.Sprintf("Deleted %d logs older than %d days", deleted, req.Days))

	return c.JSON(200, map[string]any{"deleted": deleted, "days": req.Days})
}

// Users lists all accounts with stats --> GET /admin/users
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.userService.GetAllUsers(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_USERS_VIEW", "")

	return c.JSON(200, users)
}

// MakeAdmin promotes a user --> POST /admin/users/:id/make-admin
func (h *AdminHandler) MakeAdmin(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	target, err := h.userService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.userService.MakeAdmin(c.Request().Context(), userID); err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_PROMOTE_USER", fmt.Sprintf("Promoted %s to admin", target.Username))

	return c.JSON(200, map[string]string{"message": target.Username + " is now an admin"})
}

// RevokeAdmin demotes a user; self-demotion is rejected --> POST /admin/users/:id/revoke-admin
func (h *AdminHandler) RevokeAdmin(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	sess := CurrentSession(c)
	if sess != nil && sess.Data.UserID == userID {
		return c.JSON(400, map[string]string{"error": "You cannot revoke your own admin rights"})
	}

	target, err := h.userService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.userService.RevokeAdmin(c.Request().Context(), userID); err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_REVOKE_USER", fmt.Sprintf("Revoked admin from %s", target.Username))

	return c.JSON(200, map[string]string{"message": "Admin rights revoked from " + target.Username})
}

// DeleteUser removes an account and its feedback --> DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	sess := CurrentSession(c)
	if sess != nil && sess.Data.UserID == userID {
		return c.JSON(400, map[string]string{"error": "You cannot delete your own account"})
	}

	target, err := h.userService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_DELETE_USER", fmt.Sprintf("Deleted user %s", target.Username))

	return c.JSON(200, map[string]string{"message": "User deleted"})
}

// Creatures lists the full catalog for editing --> GET /admin/creatures
func (h *AdminHandler) Creatures(c echo.Context) error {
	ctx := c.Request().Context()

	creatures, err := h.creatureService.GetAllCreatures(ctx, 0)
	if err != nil {
		return errorJSON(c, err)
	}
	categories, err := h.creatureService.GetAllCategories(ctx)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]any{"creatures": creatures, "categories": categories})
}

// CreateCreature adds a catalog entry --> POST /admin/creatures
func (h *AdminHandler) CreateCreature(c echo.Context) error {
	creature := entity.Creature{}
	if err := c.Bind(&creature); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.creatureService.CreateCreature(c.Request().Context(), &creature)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_CREATURE_CREATE", "Created creature: "+created.Name)

	return c.JSON(201, created)
}

// UpdateCreature edits a catalog entry --> PUT /admin/creatures/:id
func (h *AdminHandler) UpdateCreature(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	creature := entity.Creature{}
	if err := c.Bind(&creature); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	creature.ID = creatureID

	updated, err := h.creatureService.UpdateCreature(c.Request().Context(), &creature)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_CREATURE_UPDATE", "Updated creature: "+updated.Name)

	return c.JSON(200, updated)
}

// DeleteCreature removes a creature and its feedback --> DELETE /admin/creatures/:id
func (h *AdminHandler) DeleteCreature(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.creatureService.DeleteCreature(c.Request().Context(), creatureID); err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_CREATURE_DELETE", fmt.Sprintf("Deleted creature %d", creatureID))

	return c.JSON(200, map[string]string{"message": "Creature deleted"})
}

// CreateCategory adds a category --> POST /admin/categories
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	req := struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.creatureService.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_CATEGORY_CREATE", "Created category: "+created.Name)

	return c.JSON(201, created)
}

// SeedReset wipes the catalog and reloads samples --> POST /admin/seed/reset
func (h *AdminHandler) SeedReset(c echo.Context) error {
	categories, creatures, err := h.seeder.Reset(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_SEED_RESET", fmt.Sprintf("Reset database with %d creatures", creatures))

	return c.JSON(200, map[string]any{
		"message":    fmt.Sprintf("Database reset! Added %d categories and %d creatures.", categories, creatures),
		"categories": categories,
		"creatures":  creatures,
	})
}

// SeedAdd inserts only missing sample rows --> POST /admin/seed/add
func (h *AdminHandler) SeedAdd(c echo.Context) error {
	categories, creatures, err := h.seeder.Add(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_SEED_ADD", fmt.Sprintf("Added %d categories, %d creatures", categories, creatures))

	message := fmt.Sprintf("Added %d categories and %d creatures.", categories, creatures)
	if categories == 0 && creatures == 0 {
		message = "All sample data already exists!"
	}

	return c.JSON(200, map[string]any{"message": message, "categories": categories, "creatures": creatures})
}

// MigrateImages pulls external image URLs into the database
// --> POST /admin/images/migrate
func (h *AdminHandler) MigrateImages(c echo.Context) error {
	report, err := h.imageService.MigrateExternalImages(c.Request().Context(), h.creatureRepo)
	if err != nil {
		return errorJSON(c, err)
	}

	h.logAdmin(c, "ADMIN_IMAGES_MIGRATE", fmt.Sprintf("Migrated %d images", report.Migrated))

	return c.JSON(200, report)
}
