package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.String(200, "ok")
}

func TestWithSessionExposesCurrentSession(t *testing.T) {
	e := echo.New()
	mw := NewMiddleware(session.NewManager(session.NewMemoryStore(), false), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *session.Session
	handler := mw.WithSession(func(c echo.Context) error {
		seen = CurrentSession(c)
		return okHandler(c)
	})
	require.NoError(t, handler(c))
	require.NotNil(t, seen)
	assert.NotEmpty(t, seen.ID)
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, false)
	mw := NewMiddleware(mgr, nil, nil)

	// No session at all.
	req := httptest.NewRequest(http.MethodPost, "/feedback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw.RequireAuth(okHandler)(c))
	assert.Equal(t, 401, rec.Code)

	// Anonymous session.
	req = httptest.NewRequest(http.MethodPost, "/feedback", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, mw.WithSession(mw.RequireAuth(okHandler))(c))
	assert.Equal(t, 401, rec.Code)

	// Logged-in session.
	seedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	seedRec := httptest.NewRecorder()
	seedCtx := e.NewContext(seedReq, seedRec)
	sess := mgr.Get(seedCtx)
	sess.Data.UserID = 1
	sess.Data.Username = "alice"
	require.NoError(t, sess.Save())
	cookie := seedRec.Result().Cookies()[0]

	req = httptest.NewRequest(http.MethodPost, "/feedback", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, mw.WithSession(mw.RequireAuth(okHandler))(c))
	assert.Equal(t, 200, rec.Code)
}
