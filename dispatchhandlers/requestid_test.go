package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashmux/hashmux/dispatch"
)

var (
	uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		config         RequestIDConfig
		incomingHeader string
		wantHeader     string
		wantGenerated  bool
	}{
		{
			name:          "generates UUID v4 by default",
			config:        RequestIDConfig{},
			wantGenerated: true,
		},
		{
			name:           "does not trust incoming by default",
			config:         RequestIDConfig{},
			incomingHeader: "existing-id",
			wantGenerated:  true,
		},
		{
			name:           "trusts incoming when configured",
			config:         RequestIDConfig{TrustIncoming: true},
			incomingHeader: "existing-id",
			wantHeader:     "existing-id",
		},
		{
			name:          "generates when trust incoming but no header",
			config:        RequestIDConfig{TrustIncoming: true},
			wantGenerated: true,
		},
		{
			name:       "custom generate func",
			config:     RequestIDConfig{GenerateFunc: func(_ *dispatch.Context) string { return "custom-id" }},
			wantHeader: "custom-id",
		},
		{
			name:       "custom header name",
			config:     RequestIDConfig{HeaderName: "X-Trace-ID", GenerateFunc: func(_ *dispatch.Context) string { return "trace-123" }},
			wantHeader: "trace-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headerName := tt.config.HeaderName
			if headerName == "" {
				headerName = "X-Request-ID"
			}

			var capturedMeta string

			handler := func(ctx *dispatch.Context) (*dispatch.Response, error) {
				capturedMeta = RequestIDFromMeta(ctx)
				return dispatch.Text(http.StatusOK, "ok"), nil
			}

			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incomingHeader != "" {
				r.Header.Set(headerName, tt.incomingHeader)
			}

			resp, err := RequestIDMiddleware(tt.config)(handler)(testCtx(r))
			require.NoError(t, err)

			got := resp.Header.Get(headerName)
			if tt.wantGenerated {
				assert.Regexp(t, uuidV4Regex, got)
			} else {
				assert.Equal(t, tt.wantHeader, got)
			}

			assert.Equal(t, got, capturedMeta)
		})
	}

	t.Run("nil response passes through", func(t *testing.T) {
		handler := func(*dispatch.Context) (*dispatch.Response, error) {
			return nil, assert.AnError
		}

		resp, err := RequestIDMiddleware(RequestIDConfig{})(handler)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestGenerateUUID(t *testing.T) {
	t.Run("v4", func(t *testing.T) {
		assert.Regexp(t, uuidV4Regex, GenerateUUIDv4(nil))
	})

	t.Run("v7", func(t *testing.T) {
		assert.Regexp(t, uuidV7Regex, GenerateUUIDv7(nil))
	})

	t.Run("v7 is time ordered", func(t *testing.T) {
		first := GenerateUUIDv7(nil)
		second := GenerateUUIDv7(nil)
		assert.LessOrEqual(t, first, second)
	})
}

func TestRequestIDFromMeta(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		assert.Empty(t, RequestIDFromMeta(testCtx(httptest.NewRequest(http.MethodGet, "/", nil))))
	})

	t.Run("non-string value", func(t *testing.T) {
		ctx := testCtx(httptest.NewRequest(http.MethodGet, "/", nil))
		ctx.Meta[MetaRequestID] = 42

		assert.Empty(t, RequestIDFromMeta(ctx))
	})
}
