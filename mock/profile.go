package mock

import (
	"context"

	"github.com/fwojciec/labelmkr"
)

var _ labelmkr.ProfileService = (*ProfileService)(nil)

// ProfileService is a mock implementation of labelmkr.ProfileService.
type ProfileService struct {
	CreateProfileFn   func(ctx context.Context, profile *labelmkr.Profile) error
	FindProfileByIDFn func(ctx context.Context, id string) (*labelmkr.Profile, error)
	FindProfilesFn    func(ctx context.Context, filter labelmkr.ProfileFilter) ([]*labelmkr.Profile, error)
	UpdateProfileFn   func(ctx context.Context, id string, upd labelmkr.ProfileUpdate) (*labelmkr.Profile, error)
	DeleteProfileFn   func(ctx context.Context, id string) error
}

func (s *ProfileService) CreateProfile(ctx context.Context, profile *labelmkr.Profile) error {
	return s.CreateProfileFn(ctx, profile)
}

func (s *ProfileService) FindProfileByID(ctx context.Context, id string) (*labelmkr.Profile, error) {
	return s.FindProfileByIDFn(ctx, id)
}

func (s *ProfileService) FindProfiles(ctx context.Context, filter labelmkr.ProfileFilter) ([]*labelmkr.Profile, error) {
	return s.FindProfilesFn(ctx, filter)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id string, upd labelmkr.ProfileUpdate) (*labelmkr.Profile, error) {
	return s.UpdateProfileFn(ctx, id, upd)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	return s.DeleteProfileFn(ctx, id)
}
