package labelmkr

import (
	"context"
	"time"
)

// Profile is a named, saved pairing of code and label locators.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Pairing   Pairing   `json:"pairing"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	return p.Pairing.Validate()
}

// ProfileService represents a service for managing profiles.
type ProfileService interface {
	// CreateProfile creates a new profile.
	CreateProfile(ctx context.Context, profile *Profile) error

	// FindProfileByID retrieves a profile by ID.
	// Returns ENOTFOUND if profile does not exist.
	FindProfileByID(ctx context.Context, id string) (*Profile, error)

	// FindProfiles retrieves profiles matching the filter.
	FindProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error)

	// UpdateProfile updates an existing profile.
	// Returns ENOTFOUND if profile does not exist.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*Profile, error)

	// DeleteProfile permanently removes a profile and its stored results.
	// Returns ENOTFOUND if profile does not exist.
	DeleteProfile(ctx context.Context, id string) error
}

// ProfileFilter represents a filter for FindProfiles.
type ProfileFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProfileUpdate represents fields that can be updated on a profile.
type ProfileUpdate struct {
	Name    *string  `json:"name"`
	Pairing *Pairing `json:"pairing"`
}
