// Package collect runs a pairing against a batch of pages: it fetches each
// URL, resolves the code and label locators, and correlates them per page.
package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/labelmkr"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once.
const DefaultConcurrency = 4

// Collector fetches pages and resolves a pairing on each of them.
type Collector struct {
	Fetcher     labelmkr.Fetcher
	Parser      labelmkr.Parser
	RateLimiter labelmkr.DomainLimiter // optional
	Robots      labelmkr.RobotsPolicy  // optional
	Snapshots   labelmkr.SnapshotStore // optional
	Logger      *slog.Logger           // optional
	Concurrency int
	RetryDelays []time.Duration
}

// Page is the outcome of one URL. Err is set when the page could not be
// fetched or parsed; Records is then nil.
type Page struct {
	URL     string
	Records []labelmkr.Record
	Dropped int
	Hash    string
	Bytes   int
	Err     error
}

// Batch holds the pages of a collection in input order.
type Batch struct {
	Pages []Page
}

// Failed returns the number of pages that could not be collected.
func (b *Batch) Failed() int {
	var n int
	for _, p := range b.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Records returns the total number of records across all pages.
func (b *Batch) Records() int {
	var n int
	for _, p := range b.Pages {
		n += len(p.Records)
	}
	return n
}

// ProgressEvent reports progress during a collection.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Records   int // records resolved on the page
	Bytes     int // snapshot size
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress. It is always
// called from the goroutine running Collect.
type ProgressFunc func(event ProgressEvent)

// Collect resolves pairing on every URL. Fetch and parse failures are
// recorded on the page and do not stop the batch. An invalid locator
// aborts the whole batch with a *labelmkr.LocatorSyntaxError, since it
// would fail identically on every page. Snapshots, if configured, are
// committed only when the batch completes.
func (c *Collector) Collect(ctx context.Context, urls []string, pairing labelmkr.Pairing, progress ProgressFunc) (_ *Batch, err error) {
	if err := pairing.Validate(); err != nil {
		return nil, err
	}

	if c.Snapshots != nil {
		defer func() {
			if err != nil {
				_ = c.Snapshots.Abort()
				return
			}
			if cerr := c.Snapshots.Commit(); cerr != nil {
				err = fmt.Errorf("commit snapshots: %w", cerr)
			}
		}()
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		position int
		page     Page
	}
	resultCh := make(chan indexed, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for i, u := range urls {
			g.Go(func() error {
				page, err := c.collectPage(gctx, u, pairing)
				if err != nil {
					return err
				}
				resultCh <- indexed{position: i, page: page}
				return nil
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	pages := make([]Page, len(urls))
	var completed int
	for r := range resultCh {
		completed++
		pages[r.position] = r.page

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       r.page.URL,
			Records:   len(r.page.Records),
			Bytes:     r.page.Bytes,
		}
		if r.page.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.page.Err
		}
		progress(event)
	}

	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Batch{Pages: pages}, nil
}

// collectPage fetches and resolves a single URL. Only errors that must abort
// the batch are returned; everything else is recorded on the page.
func (c *Collector) collectPage(ctx context.Context, rawURL string, pairing labelmkr.Pairing) (Page, error) {
	page := Page{URL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		page.Err = labelmkr.Errorf(labelmkr.EINVALID, "invalid URL %q", rawURL)
		return page, nil
	}

	if c.Robots != nil {
		allowed, err := c.Robots.Allowed(ctx, rawURL)
		switch {
		case err != nil:
			c.logger().Warn("robots.txt unavailable", "url", rawURL, "err", err)
		case !allowed:
			page.Err = labelmkr.Errorf(labelmkr.EINVALID, "disallowed by robots.txt: %s", rawURL)
			return page, nil
		}
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			page.Err = err
			return page, nil
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, c.Fetcher.Fetch, c.logRetry, delays)
	if err != nil {
		page.Err = err
		return page, nil
	}
	page.Bytes = len(html)

	if c.Snapshots != nil {
		if err := c.Snapshots.Save(ctx, rawURL, html); err != nil {
			c.logger().Warn("snapshot", "url", rawURL, "err", err)
		}
	}

	doc, err := c.Parser.Parse(html)
	if err != nil {
		page.Err = err
		return page, nil
	}

	records, dropped, err := labelmkr.Resolve(doc, pairing)
	var syntaxErr *labelmkr.LocatorSyntaxError
	if errors.As(err, &syntaxErr) {
		return page, err
	}
	if err != nil {
		page.Err = err
		return page, nil
	}

	if dropped > 0 {
		c.logger().Warn("labels dropped",
			"url", rawURL,
			"dropped", dropped,
		)
	}

	page.Records = records
	page.Dropped = dropped
	page.Hash = HashRecords(records)
	return page, nil
}

func (c *Collector) logRetry(url string, attempt int, err error) {
	c.logger().Info("retry",
		"url", url,
		"attempt", attempt,
		"err", err,
	)
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// HashRecords fingerprints a record list so a page's labels can be compared
// with an earlier collection. Ordinals are implied by order and not hashed.
func HashRecords(records []labelmkr.Record) string {
	d := xxhash.New()
	for _, r := range records {
		_, _ = d.WriteString(r.Code)
		_, _ = d.WriteString("\x1f")
		_, _ = d.WriteString(r.Label)
		_, _ = d.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
