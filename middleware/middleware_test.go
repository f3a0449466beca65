package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"projectboard/backend/models"
	"projectboard/backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := primitive.NewObjectID()
	token, err := utils.GenerateToken(userID.Hex(), "alice@x.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var captured models.CurrentUser
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, reached = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			r := httptest.NewRequest(http.MethodGet, "/api/projects/", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			JWTAuthMiddleware(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !reached {
					t.Fatal("next handler was not reached")
				}
				if captured.ID != userID || captured.Email != "alice@x.com" {
					t.Errorf("context user = %+v", captured)
				}
			} else if reached {
				t.Error("next handler must not run for rejected requests")
			}
		})
	}
}

func TestUserFromContextWithoutUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserFromContext(r.Context()); ok {
		t.Error("expected no user in a bare context")
	}
}
