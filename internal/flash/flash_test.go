package flash

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/measurement-service/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Without Redis the store embeds the payload in the cookie itself.  The
// round trip below is exactly what happens across a redirect: Set on the
// mutating response, Pop on the follow-up page load.
func TestFlashRoundTripWithoutRedis(t *testing.T) {
	e := echo.New()
	store := NewStore(nil)

	// Mutating request: attach the toast.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	store.Set(e.NewContext(req, rec), Toast{Title: "Measurement deleted", Variant: "destructive"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "toast", cookies[0].Name)
	assert.NotContains(t, cookies[0].Value, "deleted", "payload must not be plaintext")

	// Follow-up request: the toast comes back once.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	toast, ok := store.Pop(c2)
	require.True(t, ok)
	assert.Equal(t, "Measurement deleted", toast.Title)
	assert.Equal(t, "destructive", toast.Variant)

	// Pop must clear the cookie so the toast shows at most once.
	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "toast", cleared[0].Name)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestPopWithoutCookie(t *testing.T) {
	e := echo.New()
	store := NewStore(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := store.Pop(c)
	assert.False(t, ok)
}

func TestPopGarbageCookie(t *testing.T) {
	e := echo.New()
	store := NewStore(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "toast", Value: "%%%not-base64%%%"})
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := store.Pop(c)
	assert.False(t, ok)
}
