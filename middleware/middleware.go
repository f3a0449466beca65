package middleware

import (
	"context"
	"net/http"
	"strings"

	"projectboard/backend/logging"
	"projectboard/backend/models"
	"projectboard/backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// JWTAuthMiddleware validates the bearer token and places the authenticated
// principal into the request context. Handlers never touch the token
// themselves.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_BAD_SUBJECT, Description: Token carries a malformed user id for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user := models.CurrentUser{ID: userID, Email: claims.Email}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying the acting user.
func WithUser(ctx context.Context, user models.CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the acting user placed there by the middleware.
func UserFromContext(ctx context.Context) (models.CurrentUser, bool) {
	user, ok := ctx.Value(userContextKey).(models.CurrentUser)
	return user, ok
}
