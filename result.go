package labelmkr

import (
	"context"
	"time"
)

// Result is a stored set of records collected from one page for a profile.
type Result struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId"`
	SourceURL string    `json:"sourceUrl"`
	Records   []Record  `json:"records"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.ProfileID == "" {
		return Errorf(EINVALID, "result profile ID required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "result source URL required")
	}
	return nil
}

// ResultService represents a service for managing stored results.
type ResultService interface {
	// CreateResult stores a new result.
	CreateResult(ctx context.Context, result *Result) error

	// FindResults retrieves results matching the filter, newest first.
	FindResults(ctx context.Context, filter ResultFilter) ([]*Result, error)

	// DeleteResultsByProfile removes all results for a profile.
	DeleteResultsByProfile(ctx context.Context, profileID string) error
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	ProfileID *string `json:"profileId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
