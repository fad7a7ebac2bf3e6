package graphql

import (
	"context"
	"errors"
)

type ctxKey int

const viewerCtxKey ctxKey = iota

// errAuthRequired surfaces in the GraphQL errors list when an anonymous
// request hits a field that needs an identity.
var errAuthRequired = errors.New("authentication required")

// WithViewer binds the authenticated user id to the request context the
// resolvers run under.
func WithViewer(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerCtxKey, userID)
}

// ViewerID returns the viewer's user id, or "" for anonymous requests.
func ViewerID(ctx context.Context) string {
	if id, ok := ctx.Value(viewerCtxKey).(string); ok {
		return id
	}
	return ""
}

func requireViewer(ctx context.Context) (string, error) {
	id := ViewerID(ctx)
	if id == "" {
		return "", errAuthRequired
	}
	return id, nil
}
