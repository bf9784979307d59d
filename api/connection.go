package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Connection interface {
	Request(ctx context.Context, endpoint *url.URL) (*http.Response, error)
}

type ClientHost struct {
	client *http.Client
	scheme string
	host   string
}

type Client struct {
	Connection Connection
	ApiKey     string
}

// Request issues a GET for endpoint against the configured scheme and host.
// Only Path and RawQuery of endpoint are used.
func (conn *ClientHost) Request(ctx context.Context, endpoint *url.URL) (*http.Response, error) {
	endpoint.Scheme = conn.scheme
	endpoint.Host = conn.host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return conn.client.Do(req)
}

// ClientFactory builds a Client for baseUrl. baseUrl may omit the scheme, in
// which case https is assumed. The timeout bounds the whole round trip.
func ClientFactory(baseUrl string, apiKey string, timeout time.Duration) (*Client, error) {
	if !strings.Contains(baseUrl, "://") {
		baseUrl = "https://" + baseUrl
	}

	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url %q: %w", baseUrl, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseUrl)
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConnsPerHost:   2,
		},
	}

	return &Client{
		Connection: &ClientHost{
			client: client,
			scheme: u.Scheme,
			host:   u.Host,
		},
		ApiKey: apiKey,
	}, nil
}
