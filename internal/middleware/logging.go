package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor writes one line per RPC. Errors the caller can fix
// log at WARN; internal and unknown failures at ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty for public procedures
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				logger.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			level := slog.LevelWarn
			if code == connect.CodeInternal || code == connect.CodeUnknown {
				level = slog.LevelError
			}
			var ce *connect.Error
			if level == slog.LevelWarn && errors.As(err, &ce) {
				attrs = append(attrs, "code", code, "error", ce.Message())
			} else {
				attrs = append(attrs, "code", code, "error", err)
			}
			logger.Log(ctx, level, "RPC error", attrs...)
			return resp, err
		}
	}
}
