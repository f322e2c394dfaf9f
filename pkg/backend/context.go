package backend

import "context"

// RequestIDHeader carries the caller's request id to the order backend.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID marks ctx so every call made with it forwards id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
