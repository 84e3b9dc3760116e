package labelmkr

import "context"

// SnapshotStore keeps the HTML snapshots a batch was collected from.
// Snapshots become visible only after Commit.
type SnapshotStore interface {
	// Save stores the snapshot fetched from url.
	Save(ctx context.Context, url, html string) error

	// Commit publishes every saved snapshot, replacing a previous set.
	Commit() error

	// Abort discards saved snapshots.
	Abort() error
}
