package mock

import (
	"context"

	"github.com/fwojciec/labelmkr"
)

var _ labelmkr.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of labelmkr.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ labelmkr.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of labelmkr.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ labelmkr.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of labelmkr.SnapshotStore.
type SnapshotStore struct {
	SaveFn   func(ctx context.Context, url, html string) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *SnapshotStore) Save(ctx context.Context, url, html string) error {
	return s.SaveFn(ctx, url, html)
}

func (s *SnapshotStore) Commit() error {
	return s.CommitFn()
}

func (s *SnapshotStore) Abort() error {
	return s.AbortFn()
}

var _ labelmkr.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of labelmkr.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) (bool, error) {
	return p.AllowedFn(ctx, url)
}
