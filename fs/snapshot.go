// Package fs provides file-based storage: HTML snapshot directories and
// profile export files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/labelmkr"
)

// URLToPath converts a page URL to a relative snapshot path rooted at the
// host. A query string is kept in the file name so paginated pages do not
// collide.
// Example: https://shop.test/list?page=2 → shop.test/list_page%3D2.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", labelmkr.Errorf(labelmkr.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", labelmkr.Errorf(labelmkr.EINVALID, "URL %q has no host", rawURL)
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	if u.RawQuery != "" {
		path += "_" + url.QueryEscape(u.RawQuery)
	}

	rel := filepath.Join(u.Host, filepath.FromSlash(path)+".html")
	if !filepath.IsLocal(rel) || !strings.HasPrefix(rel, u.Host+string(filepath.Separator)) {
		return "", labelmkr.Errorf(labelmkr.EINVALID, "path traversal in URL %q", rawURL)
	}
	return rel, nil
}

// Ensure SnapshotStore implements labelmkr.SnapshotStore at compile time.
var _ labelmkr.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore writes snapshots to a temporary directory and moves it into
// place on Commit, so a directory never mixes snapshots from two batches.
// Save is safe for concurrent use.
type SnapshotStore struct {
	baseDir string
	name    string
	mu      sync.Mutex
}

// NewSnapshotStore creates a new SnapshotStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSnapshotStore(baseDir, name string) *SnapshotStore {
	return &SnapshotStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *SnapshotStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes html under the temporary directory.
func (s *SnapshotStore) Save(ctx context.Context, rawURL, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(rawURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), relPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(html), 0644)
}

// Commit replaces the final directory with the temporary one.
func (s *SnapshotStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		// Nothing was saved; keep the previous snapshots.
		return nil
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *SnapshotStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.RemoveAll(s.tempDir())
}
