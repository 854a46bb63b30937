package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/temoto/robotstxt"
)

// Result is the raw outcome of fetching one page.
type Result struct {
	// FinalURL is the URL after redirects, used as the base for link
	// resolution and internal/external classification.
	FinalURL string
	HTML     string
	Status   int
}

// Fetcher retrieves the raw HTML for a normalized URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Result, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch failed with status %d", e.StatusCode)
}

// DNSError reports a host that could not be resolved.
type DNSError struct {
	Host string
	Err  error
}

func (e *DNSError) Error() string { return "could not resolve host " + e.Host }
func (e *DNSError) Unwrap() error { return e.Err }

// RefusedError reports a connection actively refused by the target.
type RefusedError struct {
	Host string
	Err  error
}

func (e *RefusedError) Error() string { return "connection refused by " + e.Host }
func (e *RefusedError) Unwrap() error { return e.Err }

// TimeoutError reports a fetch that exceeded its deadline.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string { return "fetch timed out for " + e.URL }
func (e *TimeoutError) Unwrap() error { return e.Err }

// NetworkError is the catch-all for network failures that do not fit a
// more specific classification.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return e.Message }
func (e *NetworkError) Unwrap() error { return e.Err }

// NormalizeURL prepends https:// when the input has no scheme and
// validates the result. It never touches the network.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", errors.New("url has no host")
	}
	return u.String(), nil
}

// HTTPFetcher fetches pages with a plain net/http client. A single
// attempt, no retries; the caller decides whether to re-invoke.
type HTTPFetcher struct {
	client        *http.Client
	userAgent     string
	respectRobots bool
}

func NewHTTPFetcher(timeout time.Duration, userAgent string, respectRobots bool) *HTTPFetcher {
	return &HTTPFetcher{
		client:        &http.Client{Timeout: timeout},
		userAgent:     userAgent,
		respectRobots: respectRobots,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &NetworkError{Message: "invalid url: " + err.Error(), Err: err}
	}

	if f.respectRobots && !f.robotsAllowed(ctx, u) {
		return nil, &NetworkError{Message: "fetch blocked by robots.txt for " + u.Hostname()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &NetworkError{Message: err.Error(), Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err, u)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err, u)
	}

	finalURL := u.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		FinalURL: finalURL,
		HTML:     string(body),
		Status:   resp.StatusCode,
	}, nil
}

// robotsAllowed fetches and evaluates robots.txt for the target host.
// Any failure to retrieve or parse robots.txt is treated as allowed.
func (f *HTTPFetcher) robotsAllowed(ctx context.Context, u *url.URL) bool {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	group, err := robotstxt.FromResponse(resp)
	if err != nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.TestAgent(path, f.userAgent)
}

// classify maps transport errors into the fetch error taxonomy.
func classify(err error, u *url.URL) error {
	host := ""
	if u != nil {
		host = u.Hostname()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DNSError{Host: host, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &RefusedError{Host: host, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: u.String(), Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: u.String(), Err: err}
	}

	return &NetworkError{Message: err.Error(), Err: err}
}
