package mock

import (
	"context"

	"github.com/fwojciec/labelmkr"
)

var _ labelmkr.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of labelmkr.ResultService.
type ResultService struct {
	CreateResultFn           func(ctx context.Context, result *labelmkr.Result) error
	FindResultsFn            func(ctx context.Context, filter labelmkr.ResultFilter) ([]*labelmkr.Result, error)
	DeleteResultsByProfileFn func(ctx context.Context, profileID string) error
}

func (s *ResultService) CreateResult(ctx context.Context, result *labelmkr.Result) error {
	return s.CreateResultFn(ctx, result)
}

func (s *ResultService) FindResults(ctx context.Context, filter labelmkr.ResultFilter) ([]*labelmkr.Result, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) DeleteResultsByProfile(ctx context.Context, profileID string) error {
	return s.DeleteResultsByProfileFn(ctx, profileID)
}
