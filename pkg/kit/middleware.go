package kit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
)

// NewRequestID returns a random 16-hex-char request identifier.
func NewRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Logging logs every invocation of the wrapped endpoint with its
// operation name, transport, request ID and duration.
func Logging(logger *slog.Logger, op string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			logger.Debug("endpoint called",
				"op", op,
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"duration", time.Since(start),
				"error", err,
			)
			return resp, err
		}
	}
}

// Recover converts an endpoint panic into an error so one bad request
// cannot take the server down.
func Recover(logger *slog.Logger) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (resp any, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("endpoint panic",
						"request_id", GetRequestID(ctx),
						"panic", r,
					)
					err = fmt.Errorf("internal error")
				}
			}()
			return next(ctx, request)
		}
	}
}
