package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashmux/hashmux/dispatch"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	run := func(t *testing.T, cfg SecurityHeadersConfig) *dispatch.Response {
		t.Helper()

		mw, err := SecurityHeadersMiddleware(cfg)
		require.NoError(t, err)

		resp, err := mw(okHandler("ok"))(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)

		return resp
	}

	t.Run("defaults", func(t *testing.T) {
		resp := run(t, SecurityHeadersConfig{})

		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", resp.Header.Get("Referrer-Policy"))
		assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
		assert.Empty(t, resp.Header.Get("Content-Security-Policy"))
	})

	t.Run("invalid frame option", func(t *testing.T) {
		_, err := SecurityHeadersMiddleware(SecurityHeadersConfig{FrameOption: "ALLOW-FROM"})
		assert.ErrorIs(t, err, ErrInvalidFrameOption)
	})

	t.Run("sameorigin frame option", func(t *testing.T) {
		resp := run(t, SecurityHeadersConfig{FrameOption: "SAMEORIGIN"})
		assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))
	})

	t.Run("nosniff can be disabled", func(t *testing.T) {
		resp := run(t, SecurityHeadersConfig{DisableContentTypeNosniff: true})
		assert.Empty(t, resp.Header.Get("X-Content-Type-Options"))
	})

	t.Run("hsts directives", func(t *testing.T) {
		resp := run(t, SecurityHeadersConfig{
			HSTSMaxAge:            31536000,
			HSTSIncludeSubDomains: true,
			HSTSPreload:           true,
		})

		assert.Equal(t,
			"max-age=31536000; includeSubDomains; preload",
			resp.Header.Get("Strict-Transport-Security"))
	})

	t.Run("policy headers set when configured", func(t *testing.T) {
		resp := run(t, SecurityHeadersConfig{
			ContentSecurityPolicy: "default-src 'self'",
			PermissionsPolicy:     "geolocation=()",
		})

		assert.Equal(t, "default-src 'self'", resp.Header.Get("Content-Security-Policy"))
		assert.Equal(t, "geolocation=()", resp.Header.Get("Permissions-Policy"))
	})

	t.Run("nil response passes through untouched", func(t *testing.T) {
		mw, err := SecurityHeadersMiddleware(SecurityHeadersConfig{})
		require.NoError(t, err)

		handler := func(*dispatch.Context) (*dispatch.Response, error) {
			return nil, assert.AnError
		}

		resp, err := mw(handler)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("allocates missing header map", func(t *testing.T) {
		mw, err := SecurityHeadersMiddleware(SecurityHeadersConfig{})
		require.NoError(t, err)

		handler := func(*dispatch.Context) (*dispatch.Response, error) {
			return &dispatch.Response{Body: []byte("ok")}, nil
		}

		resp, err := mw(handler)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	})
}
