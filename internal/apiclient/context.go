package apiclient

import "context"

type ctxKey int

const (
	bearerKey ctxKey = iota
	requestIDKey
)

// WithBearer makes calls made with ctx use token instead of the client's TokenSource.
// The gateway uses it to forward the caller's own token.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey, token)
}

func BearerFrom(ctx context.Context) string {
	s, _ := ctx.Value(bearerKey).(string)
	return s
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}
