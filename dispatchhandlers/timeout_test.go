package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashmux/hashmux/dispatch"
)

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := TimeoutMiddleware(TimeoutConfig{})
		assert.ErrorIs(t, err, ErrInvalidTimeout)

		_, err = TimeoutMiddleware(TimeoutConfig{Duration: -time.Second})
		assert.ErrorIs(t, err, ErrInvalidTimeout)
	})

	t.Run("fast handler is unaffected", func(t *testing.T) {
		mw, err := TimeoutMiddleware(TimeoutConfig{Duration: time.Second})
		require.NoError(t, err)

		resp, err := mw(okHandler("done"))(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "done", string(resp.Body))
	})

	t.Run("slow handler times out with 504", func(t *testing.T) {
		mw, err := TimeoutMiddleware(TimeoutConfig{Duration: 20 * time.Millisecond})
		require.NoError(t, err)

		slow := func(ctx *dispatch.Context) (*dispatch.Response, error) {
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Request.Context().Done():
			}
			return dispatch.Text(http.StatusOK, "late"), nil
		}

		resp, err := mw(slow)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
		assert.Equal(t, http.StatusText(http.StatusGatewayTimeout), string(resp.Body))
	})

	t.Run("custom timeout message", func(t *testing.T) {
		mw, err := TimeoutMiddleware(TimeoutConfig{
			Duration: 10 * time.Millisecond,
			Message:  "took too long",
		})
		require.NoError(t, err)

		slow := func(ctx *dispatch.Context) (*dispatch.Response, error) {
			<-ctx.Request.Context().Done()
			return nil, ctx.Request.Context().Err()
		}

		resp, err := mw(slow)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.Equal(t, "took too long", string(resp.Body))
	})

	t.Run("handler sees the deadline", func(t *testing.T) {
		mw, err := TimeoutMiddleware(TimeoutConfig{Duration: time.Second})
		require.NoError(t, err)

		var hasDeadline bool
		handler := func(ctx *dispatch.Context) (*dispatch.Response, error) {
			_, hasDeadline = ctx.Request.Context().Deadline()
			return dispatch.Text(http.StatusOK, "ok"), nil
		}

		_, err = mw(handler)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		require.NoError(t, err)
		assert.True(t, hasDeadline)
	})

	t.Run("panic inside the handler becomes an error", func(t *testing.T) {
		mw, err := TimeoutMiddleware(TimeoutConfig{Duration: time.Second})
		require.NoError(t, err)

		handler := func(*dispatch.Context) (*dispatch.Response, error) {
			panic("worker exploded")
		}

		var resp *dispatch.Response
		var handlerErr error
		assert.NotPanics(t, func() {
			resp, handlerErr = mw(handler)(testCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		})

		assert.Nil(t, resp)
		require.Error(t, handlerErr)
		assert.Contains(t, handlerErr.Error(), "worker exploded")
	})
}
