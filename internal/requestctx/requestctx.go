package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	tokenKey     ctxKey = "session_token"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithToken attaches the backend bearer token for the current request.
// The API client reads it from the context on every call, so the token
// never lives in package-level state.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func GetToken(ctx context.Context) string {
	if value, ok := ctx.Value(tokenKey).(string); ok {
		return value
	}
	return ""
}
