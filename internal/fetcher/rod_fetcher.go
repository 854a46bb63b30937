package fetcher

import (
	"context"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher renders JS-heavy pages in a real browser (via rod) before
// handing the final HTML to the extraction pipeline. The browser engine
// reports no transport status, so a successfully rendered page is
// treated as 200.
type RodFetcher struct {
	// BrowserURL optionally points at a remote DevTools endpoint; when
	// empty a locally managed browser is launched.
	BrowserURL string
	Timeout    time.Duration
}

func NewRodFetcher(timeout time.Duration) *RodFetcher {
	return &RodFetcher{Timeout: timeout}
}

func (r *RodFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &NetworkError{Message: "invalid url: " + err.Error(), Err: err}
	}

	browser := rod.New().Context(ctx).Timeout(r.Timeout)
	if r.BrowserURL != "" {
		browser = browser.ControlURL(r.BrowserURL)
	}

	if err := browser.Connect(); err != nil {
		return nil, classify(err, u)
	}
	// Close failures are ignored: the page was already fetched and a
	// panic here would take the whole request down.
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: u.String()})
	if err != nil {
		return nil, classify(err, u)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, classify(err, u)
	}

	htmlStr, err := page.HTML()
	if err != nil {
		return nil, classify(err, u)
	}

	finalURL := u.String()
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &Result{
		FinalURL: finalURL,
		HTML:     htmlStr,
		Status:   200,
	}, nil
}
