package dispatch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	resp := NewResponse(http.StatusAccepted, []byte("queued"))

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "queued", string(resp.Body))
	assert.NotNil(t, resp.Header)
	assert.Empty(t, resp.StatusText)
}

func TestText(t *testing.T) {
	resp := Text(http.StatusOK, "hello")

	assert.Equal(t, "hello", string(resp.Body))
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestJSON(t *testing.T) {
	t.Run("encodes value", func(t *testing.T) {
		resp, err := JSON(http.StatusOK, map[string]int{"a": 1})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"a":1}`, string(resp.Body))
	})

	t.Run("unencodable value fails", func(t *testing.T) {
		_, err := JSON(http.StatusOK, func() {})
		assert.Error(t, err)
	})
}

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		resp := Text(http.StatusOK, "ok").WithHeader("X-Custom", "yes")
		assert.Equal(t, "yes", resp.Header.Get("X-Custom"))
	})

	t.Run("allocates missing header map", func(t *testing.T) {
		resp := (&Response{}).WithHeader("X-Custom", "yes")
		assert.Equal(t, "yes", resp.Header.Get("X-Custom"))
	})
}
