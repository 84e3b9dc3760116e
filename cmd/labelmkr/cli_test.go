package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/labelmkr"
	main "github.com/fwojciec/labelmkr/cmd/labelmkr"
	"github.com/fwojciec/labelmkr/collect"
	"github.com/fwojciec/labelmkr/goquery"
	"github.com/fwojciec/labelmkr/mock"
)

const shelfHTML = `<html><body>
<ul class="shelf">
  <li class="item"><span class="code" data-id="a-1">SKU-1</span><a class="name" href="/p/1">Red shoe</a></li>
  <li class="item"><span class="code" data-id="a-2">SKU-2</span><a class="name" href="/p/2">Blue shoe</a></li>
  <li class="item"><span class="code" data-id="a-3">SKU-3</span><a class="name" href="/p/3">Green shoe</a></li>
</ul>
</body></html>`

// pages returns a fetcher serving html for every known URL and ENOTFOUND
// for the rest.
func pages(html map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if h, ok := html[url]; ok {
				return h, nil
			}
			return "", labelmkr.Errorf(labelmkr.ENOTFOUND, "page not found: %s", url)
		},
		CloseFn: func() error { return nil },
	}
}

type testEnv struct {
	deps   *main.Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv wires dependencies the way Main.Run does, with fetcher in place
// of the network.
func newTestEnv(t *testing.T, fetcher labelmkr.Fetcher) *testEnv {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	logger := slog.New(slog.DiscardHandler)
	parser := goquery.NewParser()

	return &testEnv{
		deps: &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Logger:  logger,
			Fetcher: fetcher,
			Parser:  parser,
			Collector: &collect.Collector{
				Fetcher:     fetcher,
				Parser:      parser,
				Logger:      logger,
				Concurrency: 2,
				RetryDelays: []time.Duration{},
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}
