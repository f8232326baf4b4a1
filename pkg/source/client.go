// Package source talks to the practice-management platform's REST API.
package source

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client issues authenticated requests against the source API. Every request
// carries two credentials: a bearer token and a tenant access key.
type Client struct {
	baseURL     string
	bearerToken string
	accessKey   string
	httpClient  *http.Client
	maxPages    int
	logger      *zap.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	BearerToken string
	AccessKey   string
	// MaxPages is the per-fetch safety valve; defaults to 500.
	MaxPages int
	Timeout  time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewClient creates a source API client.
func NewClient(opts Options, logger *zap.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 500
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		bearerToken: opts.BearerToken,
		accessKey:   opts.AccessKey,
		httpClient:  httpClient,
		maxPages:    maxPages,
		logger:      logger.Named("source"),
	}
}

// endpointURL builds the first-page URL for an endpoint.
func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// resolveNextLink makes a next-link absolute. The API usually hands back
// absolute links but some tenants return paths.
func (c *Client) resolveNextLink(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return c.baseURL + "/" + strings.TrimLeft(link, "/")
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.bearerToken))
	req.Header.Set("AccessKey", c.accessKey)
	req.Header.Set("Accept", "application/json")
}
