// Package httpclient provides the HTTP client used for schema downloads.
package httpclient

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grammarkit/nodetypes/errors"
)

// Client wraps http.Client with scheme validation and a redirect cap.
// Schema URLs come from the static registry, but redirect targets do
// not, so both are validated.
type Client struct {
	*http.Client
	allowedSchemes []string
	maxRedirects   int
}

// Options customizes client validation behavior.
type Options struct {
	AllowedSchemes []string // Default: ["http", "https"]
	MaxRedirects   *int     // Default: 10
}

// New creates a client with default validation and the given timeout.
// A zero timeout disables the deadline (a hung fetch blocks the run).
func New(timeout time.Duration) *Client {
	return NewWithOptions(timeout, Options{})
}

// NewWithOptions creates a client with custom validation options.
func NewWithOptions(timeout time.Duration, opts Options) *Client {
	maxRedirects := 10
	if opts.MaxRedirects != nil {
		maxRedirects = *opts.MaxRedirects
	}

	allowedSchemes := []string{"http", "https"}
	if opts.AllowedSchemes != nil {
		allowedSchemes = opts.AllowedSchemes
	}

	client := &Client{
		Client: &http.Client{
			Timeout: timeout,
		},
		allowedSchemes: allowedSchemes,
		maxRedirects:   maxRedirects,
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	return client
}

// validateURL checks a URL before a request or redirect is issued
func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, allowedScheme := range c.allowedSchemes {
		if scheme == allowedScheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	if u.User != nil {
		// Could be credential injection or URL confusion: http://evil.com@host/
		return errors.New("URL contains userinfo")
	}

	if u.Hostname() == "" {
		return errors.New("URL missing hostname")
	}

	return nil
}

// ValidateURL validates a URL string before creating a request
func (c *Client) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}

	if err := c.validateURL(u); err != nil {
		return nil, err
	}

	return u, nil
}
