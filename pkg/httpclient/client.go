package httpclient

import (
	"context"
	"net/http"
	"time"
)

// ClientType represents the header profile sent with each request
type ClientType string

const (
	// BrowserClient uses browser-like headers; the dictionary front end serves
	// its regular HTML page to these
	BrowserClient ClientType = "browser"

	// PlainClient sends only a curl-like User-Agent
	PlainClient ClientType = "plain"
)

// HTTPClient wraps an http.Client with a header profile
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
	timeout    *time.Duration
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithTimeout sets an overall per-request timeout. Zero means no timeout.
// It applies whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = &d
	}
}

// WithHTTPClient replaces the underlying http.Client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a new HTTP client with the specified header profile
func NewClient(clientType ClientType, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		clientType: clientType,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		// copy so a caller-supplied client keeps its own timeout
		hc := *c.client
		hc.Timeout = *c.timeout
		c.client = &hc
	}
	return c
}

// Do executes an HTTP request with the headers of the client's profile
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get issues a GET request bound to ctx
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,ar;q=0.8")
		req.Header.Set("Connection", "keep-alive")

	case PlainClient:
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Go's default User-Agent
	}
}
