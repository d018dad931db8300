package auth

import "context"

// The bearer token is minted and refreshed by an external identity
// provider; this service only carries it through to the backend.

type contextKey struct{}

// WithToken returns a context carrying the caller's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// TokenFrom extracts the bearer token from the context, if present.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(contextKey{}).(string)
	return token
}
