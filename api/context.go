package api

import (
	"context"

	"github.com/foodgram-project/backend/models"
)

type keyType string

const (
	viewerKey    keyType = "viewer"
	requestIDKey keyType = "requestID"
)

// ctxWithViewer adds the authenticated user to the context
func ctxWithViewer(ctx context.Context, viewer *models.User) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ctxGetViewer retrieves the authenticated user from the context. A nil
// result is the anonymous viewer.
func ctxGetViewer(ctx context.Context) *models.User {
	if value := ctx.Value(viewerKey); value != nil {
		if viewer, ok := value.(*models.User); ok {
			return viewer
		}
	}
	return nil
}

// ctxWithRequestID adds a request correlation id to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID retrieves the request correlation id, or "" when absent
func ctxGetRequestID(ctx context.Context) string {
	if value := ctx.Value(requestIDKey); value != nil {
		if requestID, ok := value.(string); ok {
			return requestID
		}
	}
	return ""
}
