package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
	"github.com/shaktiaryan/wildlife-gallery/internal/session"
)

const sessionContextKey = "gallery.session"

// Middleware carries the cross-cutting request checks: session loading,
// login/admin gates, and page-view audit logging.
type Middleware struct {
	sessions    *session.Manager
	userService *service.UserService
	activity    *service.ActivityService
}

func NewMiddleware(sessions *session.Manager, userService *service.UserService, activity *service.ActivityService) *Middleware {
	return &Middleware{sessions: sessions, userService: userService, activity: activity}
}

// WithSession loads the request's session into the echo context.
func (m *Middleware) WithSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(sessionContextKey, m.sessions.Get(c))
		return next(c)
	}
}

// CurrentSession returns the session loaded by WithSession.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

// RequireAuth rejects requests without a logged-in session.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.LoggedIn() {
			return c.JSON(401, map[string]string{"error": "Please login to access this page"})
		}
		return next(c)
	}
}

// RequireAdmin re-derives the admin flag from the user record on every
// request; the copy held in the session is only a hint and may be
// stale after a promote/revoke.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.LoggedIn() {
			return c.JSON(401, map[string]string{"error": "Please login to access this page"})
		}

		isAdmin, err := m.userService.IsAdmin(c.Request().Context(), sess.Data.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": "Something went wrong"})
		}
		if !isAdmin {
			return c.JSON(403, map[string]string{"error": "Admin access required"})
		}
		return next(c)
	}
}

var skipLogPaths = []string{"/health", "/api/", "/favicon"}

// LogPageViews records authenticated page views to the audit trail.
// Health probes and API traffic are skipped to keep the log readable.
func (m *Middleware) LogPageViews(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := CurrentSession(c)
		if sess != nil && sess.LoggedIn() {
			path := c.Request().URL.Path
			skip := false
			for _, p := range skipLogPaths {
				if strings.Contains(path, p) {
					skip = true
					break
				}
			}
			if !skip {
				userID := sess.Data.UserID
				m.activity.Log(&userID, sess.Data.Username,
					c.Request().Method+" "+path, "",
					c.RealIP(), c.Request().UserAgent())
			}
		}
		return next(c)
	}
}
