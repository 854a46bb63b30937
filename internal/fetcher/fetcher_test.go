package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare host", "example.com", "https://example.com", false},
		{"bare host with path", "example.com/page", "https://example.com/page", false},
		{"explicit http", "http://example.com", "http://example.com", false},
		{"explicit https", "https://example.com/a?b=c", "https://example.com/a?b=c", false},
		{"surrounding whitespace", "  example.com  ", "https://example.com", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"ftp scheme", "ftp://example.com", "", true},
		{"no host", "https://", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeURL(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHTTPFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "TestBot/1.0" {
			t.Errorf("unexpected user agent: %q", ua)
		}
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "TestBot/1.0", false)
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if res.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Status)
	}
	if !strings.Contains(res.HTML, "hello") {
		t.Fatalf("unexpected body: %q", res.HTML)
	}
	if res.FinalURL == "" {
		t.Fatal("expected final URL to be set")
	}
}

func TestHTTPFetcher_FollowsRedirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>final</html>"))
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/landed", http.StatusFound)
	}))
	defer redirector.Close()

	f := NewHTTPFetcher(5*time.Second, "", false)
	res, err := f.Fetch(context.Background(), redirector.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if res.FinalURL != target.URL+"/landed" {
		t.Fatalf("expected final URL after redirect, got %q", res.FinalURL)
	}
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "", false)
	_, err := f.Fetch(context.Background(), srv.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.StatusCode)
	}
}

func TestHTTPFetcher_RobotsBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "TestBot/1.0", true)

	if _, err := f.Fetch(context.Background(), srv.URL+"/private/page"); err == nil {
		t.Fatal("expected robots.txt to block the fetch")
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/public"); err != nil {
		t.Fatalf("allowed path should fetch, got %v", err)
	}
}

func TestHTTPFetcher_RobotsUnavailableAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "TestBot/1.0", true)
	if _, err := f.Fetch(context.Background(), srv.URL+"/page"); err != nil {
		t.Fatalf("robots failure must not block fetch, got %v", err)
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("slow"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(20*time.Millisecond, "", false)
	_, err := f.Fetch(context.Background(), srv.URL)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}
}

func TestHTTPFetcher_Refused(t *testing.T) {
	// Bind a port then close it so the connection is actively refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	f := NewHTTPFetcher(2*time.Second, "", false)
	_, err := f.Fetch(context.Background(), addr)
	if err == nil {
		t.Fatal("expected error for closed port")
	}

	var refusedErr *RefusedError
	var netErr *NetworkError
	if !errors.As(err, &refusedErr) && !errors.As(err, &netErr) {
		t.Fatalf("expected refused or network error, got %T: %v", err, err)
	}
}

func TestHTTPFetcher_DNSFailure(t *testing.T) {
	f := NewHTTPFetcher(5*time.Second, "", false)
	_, err := f.Fetch(context.Background(), "https://definitely-not-a-real-host.invalid")
	if err == nil {
		t.Fatal("expected DNS error")
	}

	var dnsErr *DNSError
	if !errors.As(err, &dnsErr) {
		t.Fatalf("expected *DNSError, got %T: %v", err, err)
	}
	if dnsErr.Host != "definitely-not-a-real-host.invalid" {
		t.Fatalf("unexpected host: %q", dnsErr.Host)
	}
}
