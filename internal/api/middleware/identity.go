package middleware

import (
	"context"
	"net/http"
)

const UserIDKey contextKey = "user_id"

// Identity extracts the authenticated user id set by the upstream gateway.
// Authentication itself happens before this service; an absent header just
// means an anonymous caller, which only disables the private health scope.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the caller's user id from context, or "" for anonymous.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
