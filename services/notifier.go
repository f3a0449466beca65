package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationClient pushes membership events to the notifications service.
// Calls go through a circuit breaker; a dead notifications service must never
// fail a project mutation.
type NotificationClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationClient(baseURL string, client *http.Client, breaker *gobreaker.CircuitBreaker) *NotificationClient {
	return &NotificationClient{baseURL: baseURL, client: client, breaker: breaker}
}

func (c *NotificationClient) Notify(userID primitive.ObjectID, message string) error {
	payload, err := json.Marshal(map[string]string{
		"userId":  userID.Hex(),
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %v", err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Post(c.baseURL+"/api/notifications", "application/json", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("notifications service returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return err
}
