package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(e *echo.Echo, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(ctx, "abc", &Data{UserID: 1, Username: "alice"}))

	data, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "alice", data.Username)

	require.NoError(t, store.Delete(ctx, "abc"))
	data, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestManagerCreatesNewSession(t *testing.T) {
	e := echo.New()
	mgr := NewManager(NewMemoryStore(), false)

	c, _ := newTestContext(e, nil)
	sess := mgr.Get(c)
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.LoggedIn())
}

func TestManagerLoadsExistingSession(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	mgr := NewManager(store, false)

	c, rec := newTestContext(e, nil)
	sess := mgr.Get(c)
	sess.Data.UserID = 42
	sess.Data.Username = "alice"
	require.NoError(t, sess.Save())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, sess.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	c2, _ := newTestContext(e, cookie)
	loaded := mgr.Get(c2)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, 42, loaded.Data.UserID)
	assert.True(t, loaded.LoggedIn())
}

func TestManagerIgnoresUnknownCookie(t *testing.T) {
	e := echo.New()
	mgr := NewManager(NewMemoryStore(), false)

	c, _ := newTestContext(e, &http.Cookie{Name: CookieName, Value: "stale-id"})
	sess := mgr.Get(c)
	assert.NotEqual(t, "stale-id", sess.ID)
	assert.False(t, sess.LoggedIn())
}

func TestDestroyExpiresCookie(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	mgr := NewManager(store, false)

	c, rec := newTestContext(e, nil)
	sess := mgr.Get(c)
	sess.Data.UserID = 1
	require.NoError(t, sess.Save())
	require.NoError(t, sess.Destroy())

	cookies := rec.Result().Cookies()
	last := cookies[len(cookies)-1]
	assert.Equal(t, CookieName, last.Name)
	assert.Empty(t, last.Value)
	assert.Negative(t, last.MaxAge)

	data, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFlashPop(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	mgr := NewManager(store, false)

	c, rec := newTestContext(e, nil)
	sess := mgr.Get(c)
	sess.Flash("success", "Welcome back!")
	sess.Flash("error", "Something broke")
	require.NoError(t, sess.Save())

	cookie := rec.Result().Cookies()[0]

	c2, _ := newTestContext(e, cookie)
	loaded := mgr.Get(c2)
	flashes := loaded.PopFlashes()
	assert.Equal(t, []string{"Welcome back!"}, flashes["success"])
	assert.Equal(t, []string{"Something broke"}, flashes["error"])
	require.NoError(t, loaded.Save())

	c3, _ := newTestContext(e, cookie)
	again := mgr.Get(c3)
	assert.Empty(t, again.PopFlashes())
}
