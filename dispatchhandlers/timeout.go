package dispatchhandlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashmux/hashmux/dispatch"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not greater
// than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout middleware behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the handler to complete.
	// Must be greater than zero.
	Duration time.Duration

	// Message is the response body returned when the handler times out.
	// When empty, the standard 504 status text is used.
	Message string
}

// TimeoutMiddleware returns a middleware that limits handler execution
// time. The wrapped handler runs with a deadline on its request context;
// when it does not complete in time, the client receives 504 Gateway
// Timeout and the handler's eventual result is discarded.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func TimeoutMiddleware(cfg TimeoutConfig) (dispatch.Middleware, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration

	message := cfg.Message
	if message == "" {
		message = http.StatusText(http.StatusGatewayTimeout)
	}

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), duration)
			defer cancel()

			ctx.Request = ctx.Request.WithContext(reqCtx)

			type result struct {
				resp *dispatch.Response
				err  error
			}

			// Buffered so the late handler can finish and be collected
			// even after the timeout response has been returned.
			done := make(chan result, 1)

			go func() {
				defer func() {
					if rec := recover(); rec != nil {
						done <- result{err: fmt.Errorf("%v", rec)}
					}
				}()

				resp, err := next(ctx)
				done <- result{resp: resp, err: err}
			}()

			select {
			case res := <-done:
				return res.resp, res.err
			case <-reqCtx.Done():
				return dispatch.Text(http.StatusGatewayTimeout, message), nil
			}
		}
	}, nil
}
