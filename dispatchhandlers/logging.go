package dispatchhandlers

import (
	"log/slog"
	"time"

	"github.com/hashmux/hashmux/dispatch"
)

// LoggingConfig configures the Logging middleware behaviour.
type LoggingConfig struct {
	// Logger is the destination logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Level is the level for successfully handled requests. Handler
	// errors are always logged at Error level. Defaults to Info.
	Level slog.Level
}

// LoggingMiddleware returns a middleware that logs one line per dispatched
// request: method, path, status, duration, and the request ID when
// RequestIDMiddleware ran earlier in the chain.
func LoggingMiddleware(cfg LoggingConfig) dispatch.Middleware {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := cfg.Level

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			start := time.Now()

			resp, err := next(ctx)

			args := []any{
				slog.String("method", ctx.Request.Method),
				slog.String("path", ctx.URL.Path),
				slog.Duration("duration", time.Since(start)),
			}

			if resp != nil {
				status := resp.StatusCode
				if status == 0 {
					status = 200
				}
				args = append(args, slog.Int("status", status))
			}

			if id := RequestIDFromMeta(ctx); id != "" {
				args = append(args, slog.String("request_id", id))
			}

			reqCtx := ctx.Request.Context()

			if err != nil {
				args = append(args, slog.Any("error", err))
				logger.ErrorContext(reqCtx, "request failed", args...)
			} else {
				logger.Log(reqCtx, level, "request handled", args...)
			}

			return resp, err
		}
	}
}
