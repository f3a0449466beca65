package utils

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for calls to other services. Bounded
// timeouts so a dead collaborator cannot hold request handlers hostage.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
