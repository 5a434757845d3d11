package utils

import (
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Every client keeps its own cookie jar, so the viewer session cookie issued
// by the server on the first response is replayed on later requests and the
// layer URLs it is handed stay fetchable by the same client.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/version/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL. A zero timeout leaves the
// resty default (no timeout) in place.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New()

	// cookiejar.New only fails for a non-nil PublicSuffixList.
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
