package obs

import (
	"context"
	"eld-trip-service/internal/platform/logging"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of the named operation when the returned func runs.
// Usage: defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := logging.FromContext(ctx)
	reqID := RequestID(ctx)

	return func(errp *error) {
		attrs := []any{
			slog.String("req_id", reqID),
			slog.String("op", name),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			logger.Warn("operation failed", append(attrs, slog.String("error", (*errp).Error()))...)
			return
		}
		logger.Debug("operation", attrs...)
	}
}
