package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthMiddleware(t *testing.T) {
	t.Run("requires an auth source", func(t *testing.T) {
		_, err := BasicAuthMiddleware(BasicAuthConfig{})
		assert.ErrorIs(t, err, ErrNoAuthSource)
	})

	t.Run("missing credentials yield 401 with challenge", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		resp, err := mw(okHandler("in"))(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, `Basic realm="Restricted"`, resp.Header.Get("WWW-Authenticate"))
		assert.Empty(t, resp.Body)
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth("admin", "wrong")

		resp, err := mw(okHandler("in"))(testCtx(r))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user yields 401", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth("ghost", "secret")

		resp, err := mw(okHandler("in"))(testCtx(r))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid static credentials pass through", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth("admin", "secret")

		resp, err := mw(okHandler("in"))(testCtx(r))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "in", string(resp.Body))
	})

	t.Run("validate func takes priority over credentials", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			ValidateFunc: func(username, password string) bool {
				return username == "dynamic" && password == "ok"
			},
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth("admin", "secret")

		resp, err := mw(okHandler("in"))(testCtx(r))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth("dynamic", "ok")

		resp, err = mw(okHandler("in"))(testCtx(r))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("custom realm in challenge", func(t *testing.T) {
		mw, err := BasicAuthMiddleware(BasicAuthConfig{
			Realm:       "metrics",
			Credentials: map[string]string{"admin": "secret"},
		})
		require.NoError(t, err)

		resp, err := mw(okHandler("in"))(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.Equal(t, `Basic realm="metrics"`, resp.Header.Get("WWW-Authenticate"))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, constantTimeEqual("secret", "secret"))
	assert.False(t, constantTimeEqual("secret", "Secret"))
	assert.False(t, constantTimeEqual("secret", "secret2"))
	assert.False(t, constantTimeEqual("", "secret"))
	assert.True(t, constantTimeEqual("", ""))
}

func TestUnauthorizedResponse(t *testing.T) {
	resp := unauthorized(`Basic realm="x"`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, resp.Body)
}
