package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tokoku/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

func run(t *testing.T, req *http.Request) (uint, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint
	var gotOK bool
	h := NewSimpleAuth(secret).RequireAuth(func(c echo.Context) error {
		gotID, gotOK = UserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	return gotID, gotOK, h(c)
}

func TestRequireAuth_Cookie(t *testing.T) {
	token, err := tokens.SignAccessToken(5, "Sari", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: token})

	id, ok, err := run(t, req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 5, id)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	token, err := tokens.SignAccessToken(9, "Eko", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	id, ok, err := run(t, req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 9, id)
}

func TestRequireAuth_Rejects(t *testing.T) {
	_, _, err := run(t, httptest.NewRequest(http.MethodGet, "/", nil))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	_, _, err = run(t, req)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
