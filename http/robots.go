package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/labelmkr"
	"github.com/temoto/robotstxt"
)

// RobotsAgent is the product token matched against robots.txt groups.
const RobotsAgent = "labelmkr"

var _ labelmkr.RobotsPolicy = (*Robots)(nil)

// Robots checks URLs against each site's robots.txt. Files are fetched once
// per scheme and host and kept for the lifetime of the Robots.
type Robots struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	sites map[string]*robotstxt.RobotsData
}

// NewRobots creates a Robots that fetches robots.txt with the given timeout.
func NewRobots(timeout time.Duration) *Robots {
	return &Robots{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
		sites:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether RobotsAgent may fetch rawURL. A missing robots.txt
// allows everything; a server error on robots.txt disallows everything.
func (r *Robots) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, labelmkr.Errorf(labelmkr.EINVALID, "invalid URL %q", rawURL)
	}

	data, err := r.site(ctx, u)
	if err != nil {
		return false, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, RobotsAgent), nil
}

func (r *Robots) site(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	origin := u.Scheme + "://" + u.Host

	r.mu.Lock()
	data, ok := r.sites[origin]
	r.mu.Unlock()
	if ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, labelmkr.Errorf(labelmkr.EINVALID, "invalid URL %q: %v", origin, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt for %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt for %s: %w", u.Host, err)
	}

	r.mu.Lock()
	r.sites[origin] = data
	r.mu.Unlock()
	return data, nil
}
