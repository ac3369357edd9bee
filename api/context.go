package api

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a correlation identifier to ctx. The Client sends
// it as X-Request-ID on outbound backend calls instead of generating one,
// which lets a host application trace a user action across services.
//
//	Docs: docs/api.md
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}
