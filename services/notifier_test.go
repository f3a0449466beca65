package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})
}

func TestNotifyDeliversPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewNotificationClient(server.URL, server.Client(), newTestBreaker())
	userID := primitive.NewObjectID()

	if err := client.Notify(userID, "You have been added to project Alpha"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got["userId"] != userID.Hex() || got["message"] == "" {
		t.Errorf("payload = %v", got)
	}
}

func TestNotifyBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNotificationClient(server.URL, server.Client(), newTestBreaker())
	userID := primitive.NewObjectID()

	for i := 0; i < 4; i++ {
		if err := client.Notify(userID, "ping"); err == nil {
			t.Fatalf("round %d: expected an error from the failing server", i+1)
		}
	}

	// The breaker is now open; calls fail fast without reaching the server.
	err := client.Notify(userID, "ping")
	if err != gobreaker.ErrOpenState {
		t.Fatalf("err = %v, want %v", err, gobreaker.ErrOpenState)
	}
}
