package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/labelmkr"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ labelmkr.ResultService = (*ResultService)(nil)

// ResultService implements labelmkr.ResultService using SQLite.
// Records are stored as a JSON array.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// CreateResult stores a new result. The referenced profile must exist.
func (s *ResultService) CreateResult(ctx context.Context, result *labelmkr.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM profiles WHERE id = ?", result.ProfileID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return labelmkr.Errorf(labelmkr.ENOTFOUND, "profile not found")
	}

	records := result.Records
	if records == nil {
		records = []labelmkr.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, profile_id, source_url, records, hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.ID, result.ProfileID, result.SourceURL, string(data), result.Hash,
		formatTime(result.CreatedAt))

	return err
}

// FindResults retrieves results matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter labelmkr.ResultFilter) ([]*labelmkr.Result, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, profile_id, source_url, records, hash, created_at FROM results WHERE 1=1")

	if filter.ProfileID != nil {
		query.WriteString(" AND profile_id = ?")
		args = append(args, *filter.ProfileID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*labelmkr.Result
	for rows.Next() {
		var result labelmkr.Result
		var records, createdAt string

		if err := rows.Scan(&result.ID, &result.ProfileID, &result.SourceURL,
			&records, &result.Hash, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(records), &result.Records); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
		if result.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		results = append(results, &result)
	}

	return results, rows.Err()
}

// DeleteResultsByProfile removes all results for a profile. Deleting the
// results of a profile with none is not an error.
func (s *ResultService) DeleteResultsByProfile(ctx context.Context, profileID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE profile_id = ?", profileID)
	return err
}
