package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// AnonymousUserID is recorded as the actor when authentication is disabled.
const AnonymousUserID = "anonymous"

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// ActorID is the user id for audit fields, AnonymousUserID when nobody is authenticated.
func ActorID(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return userID
	}
	return AnonymousUserID
}
