package api

import (
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Auth     *AuthHandler
	Gallery  *GalleryHandler
	Feedback *FeedbackHandler
	Image    *ImageHandler
	Chat     *ChatHandler
	Admin    *AdminHandler
	Health   *HealthHandler
	APIV1    *APIV1Handler
}

func RegisterRoutes(e *echo.Echo, mw *Middleware, h Handlers, jwtSecret string) {
	// Chat fans out to a paid upstream, so it gets its own limiter.
	chatLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     5,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	})

	// Health probes stay outside the session middleware.
	e.GET("/health", h.Health.Check)
	e.GET("/health/ready", h.Health.Ready)
	e.GET("/health/live", h.Health.Live)

	// Session-backed gallery surface.
	site := e.Group("", mw.WithSession, mw.LogPageViews)
	site.GET("/", h.Gallery.Index)
	site.GET("/gallery/category/:id", h.Gallery.Category)
	site.GET("/gallery/creature/:id", h.Gallery.Detail)
	site.GET("/search", h.Gallery.Search)

	site.POST("/auth/login", h.Auth.Login)
	site.POST("/auth/register", h.Auth.Register)
	site.POST("/auth/logout", h.Auth.Logout)

	site.POST("/feedback", h.Feedback.Create, mw.RequireAuth)
	site.DELETE("/feedback/:id", h.Feedback.Delete, mw.RequireAuth)

	site.POST("/chat", h.Chat.Chat, chatLimiter)

	// Unauthenticated image and data endpoints.
	e.GET("/api/images/:creatureId", h.Image.Serve)
	e.GET("/api/images/cache/stats", h.Image.CacheStats)
	e.GET("/feedback/api/:creatureId", h.Feedback.ListForCreature)
	e.POST("/api/auth/token", h.Auth.Token)

	// Token-protected JSON API.
	v1 := e.Group("/api/v1")
	v1.Use(echojwt.JWT([]byte(jwtSecret)))
	v1.GET("/creatures", h.APIV1.ListCreatures)
	v1.GET("/creatures/:id", h.APIV1.GetCreature)
	v1.GET("/categories", h.APIV1.ListCategories)
	v1.GET("/me", h.APIV1.Me)

	// Admin surface; the admin flag is re-checked per request.
	admin := e.Group("/admin", mw.WithSession, mw.RequireAdmin)
	admin.GET("", h.Admin.Dashboard)
	admin.GET("/health", h.Admin.Health)
	admin.GET("/logs", h.Admin.Logs)
	admin.POST("/logs/clean", h.Admin.CleanLogs)
	admin.GET("/users", h.Admin.Users)
	admin.POST("/users/:id/make-admin", h.Admin.MakeAdmin)
	admin.POST("/users/:id/revoke-admin", h.Admin.RevokeAdmin)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.GET("/creatures", h.Admin.Creatures)
	admin.POST("/creatures", h.Admin.CreateCreature)
	admin.PUT("/creatures/:id", h.Admin.UpdateCreature)
	admin.DELETE("/creatures/:id", h.Admin.DeleteCreature)
	admin.PUT("/creatures/:id/image", h.Image.Upload)
	admin.POST("/categories", h.Admin.CreateCategory)
	admin.POST("/seed/reset", h.Admin.SeedReset)
	admin.POST("/seed/add", h.Admin.SeedAdd)
	admin.POST("/images/migrate", h.Admin.MigrateImages)
}
