package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/labelmkr"
	main "github.com/fwojciec/labelmkr/cmd/labelmkr"
	"github.com/fwojciec/labelmkr/fs"
	"github.com/fwojciec/labelmkr/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSaveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates a new profile", func(t *testing.T) {
		t.Parallel()

		var created *labelmkr.Profile
		env := newTestEnv(t, nil)
		profiles := profilesWith()
		profiles.CreateProfileFn = func(_ context.Context, p *labelmkr.Profile) error {
			created = p
			return nil
		}
		env.deps.Profiles = profiles
		cmd := &main.ProfileSaveCmd{
			Name:        "shelf",
			Code:        "span.code",
			Label:       "a.name",
			CodeSource:  "attr",
			CodeAttr:    "data-id",
			LabelSource: "text",
		}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "shelf", created.Name)
		assert.Equal(t, labelmkr.Pairing{
			CodeLocator:  "span.code",
			CodeRule:     labelmkr.Rule{Source: labelmkr.SourceAttr, AttrName: "data-id"},
			LabelLocator: "a.name",
			LabelRule:    labelmkr.Rule{Source: labelmkr.SourceText},
		}, created.Pairing)
		assert.Contains(t, env.stdout.String(), `Saved profile "shelf"`)
	})

	t.Run("replaces the pairing of an existing profile", func(t *testing.T) {
		t.Parallel()

		var updatedID string
		var updated labelmkr.ProfileUpdate
		env := newTestEnv(t, nil)
		profiles := profilesWith(shelfProfile())
		profiles.UpdateProfileFn = func(_ context.Context, id string, upd labelmkr.ProfileUpdate) (*labelmkr.Profile, error) {
			updatedID, updated = id, upd
			return shelfProfile(), nil
		}
		env.deps.Profiles = profiles
		cmd := &main.ProfileSaveCmd{Name: "shelf", Code: "td.sku", Label: "td.title"}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		assert.Equal(t, "prof-1", updatedID)
		require.NotNil(t, updated.Pairing)
		assert.Equal(t, "td.sku", updated.Pairing.CodeLocator)
		assert.Equal(t, "td.title", updated.Pairing.LabelLocator)
	})

	t.Run("rejects blank selectors", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith()
		cmd := &main.ProfileSaveCmd{Name: "shelf", Code: "  ", Label: "a.name"}

		err := cmd.Run(env.deps)

		require.Error(t, err)
		assert.Equal(t, labelmkr.EINVALID, labelmkr.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "code selector required")
	})
}

func TestProfileListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists profiles with their selectors", func(t *testing.T) {
		t.Parallel()

		attrProfile := &labelmkr.Profile{
			ID:   "prof-2",
			Name: "links",
			Pairing: labelmkr.Pairing{
				CodeLocator:  "a.sku",
				CodeRule:     labelmkr.Rule{Source: labelmkr.SourceAttr, AttrName: "data-sku"},
				LabelLocator: "a.sku",
				LabelRule:    labelmkr.Rule{Source: labelmkr.SourceHref},
			},
			UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}
		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile(), attrProfile)
		cmd := &main.ProfileListCmd{}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		output := env.stdout.String()
		assert.Contains(t, output, "shelf")
		assert.Contains(t, output, "span.code")
		assert.Contains(t, output, "links")
		assert.Contains(t, output, "a.sku @data-sku")
		assert.Contains(t, output, "a.sku @href")
	})

	t.Run("shows a hint when there are no profiles", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith()
		cmd := &main.ProfileListCmd{}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, env.stdout.String(), "No profiles found")
	})
}

func TestProfileShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the profile and its stored result count", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile())
		env.deps.Results = &mock.ResultService{
			FindResultsFn: func(_ context.Context, _ labelmkr.ResultFilter) ([]*labelmkr.Result, error) {
				return []*labelmkr.Result{{ID: "r-1"}, {ID: "r-2"}}, nil
			},
		}
		cmd := &main.ProfileShowCmd{Name: "shelf"}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		output := env.stdout.String()
		assert.Contains(t, output, "Name:           shelf\n")
		assert.Contains(t, output, "Code selector:  span.code\n")
		assert.Contains(t, output, "Label source:   text\n")
		assert.Contains(t, output, "Stored results: 2\n")
	})

	t.Run("reports an unknown profile", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith()
		cmd := &main.ProfileShowCmd{Name: "nope"}

		err := cmd.Run(env.deps)

		require.Error(t, err)
		assert.Equal(t, labelmkr.ENOTFOUND, labelmkr.ErrorCode(err))
	})
}

func TestProfileDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		cmd := &main.ProfileDeleteCmd{Name: "shelf"}

		err := cmd.Run(env.deps)

		require.Error(t, err)
		assert.Contains(t, env.stderr.String(), "--force")
	})

	t.Run("deletes the profile", func(t *testing.T) {
		t.Parallel()

		var deleted string
		env := newTestEnv(t, nil)
		profiles := profilesWith(shelfProfile())
		profiles.DeleteProfileFn = func(_ context.Context, id string) error {
			deleted = id
			return nil
		}
		env.deps.Profiles = profiles
		cmd := &main.ProfileDeleteCmd{Name: "shelf", Force: true}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		assert.Equal(t, "prof-1", deleted)
		assert.Contains(t, env.stdout.String(), `Deleted profile "shelf"`)
	})
}

func TestProfileExportImport(t *testing.T) {
	t.Parallel()

	t.Run("exports to stdout as JSON", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile())
		cmd := &main.ProfileExportCmd{Name: "shelf"}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, env.stdout.String(), `"codeSelector": "span.code"`)
		assert.Contains(t, env.stdout.String(), `"labelSelector": "a.name"`)
	})

	t.Run("round-trips through a file under a new name", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shelf.json")

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile())
		export := &main.ProfileExportCmd{Name: "shelf", Output: path}
		require.NoError(t, export.Run(env.deps))
		_, err := os.Stat(path)
		require.NoError(t, err)

		var created *labelmkr.Profile
		env = newTestEnv(t, nil)
		profiles := profilesWith(shelfProfile())
		profiles.CreateProfileFn = func(_ context.Context, p *labelmkr.Profile) error {
			created = p
			return nil
		}
		env.deps.Profiles = profiles
		imp := &main.ProfileImportCmd{File: path, Name: "shelf-copy"}

		err = imp.Run(env.deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "shelf-copy", created.Name)
		assert.Equal(t, shelfProfile().Pairing, created.Pairing)
	})

	t.Run("exports to stdout as YAML", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile())
		cmd := &main.ProfileExportCmd{Name: "shelf", Format: "yaml"}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, env.stdout.String(), "codeSelector: span.code\n")
	})

	t.Run("imports a YAML file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shelf.yml")
		require.NoError(t, os.WriteFile(path, []byte("name: shelf\ncodeSelector: span.code\nlabelSelector: a.name\nlabelSource: href\n"), 0o644))

		var created *labelmkr.Profile
		env := newTestEnv(t, nil)
		profiles := profilesWith()
		profiles.CreateProfileFn = func(_ context.Context, p *labelmkr.Profile) error {
			created = p
			return nil
		}
		env.deps.Profiles = profiles
		cmd := &main.ProfileImportCmd{File: path}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, labelmkr.SourceHref, created.Pairing.LabelRule.Source)
		assert.Equal(t, labelmkr.SourceText, created.Pairing.CodeRule.Source)
	})

	t.Run("imports browser extension settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "labelmkr-settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"qrSelector":"span.code","titleSelector":"a.name","qrSource":"data-id","titleSource":"text","width":62}`), 0o644))

		var created *labelmkr.Profile
		env := newTestEnv(t, nil)
		profiles := profilesWith()
		profiles.CreateProfileFn = func(_ context.Context, p *labelmkr.Profile) error {
			created = p
			return nil
		}
		env.deps.Profiles = profiles
		cmd := &main.ProfileImportCmd{File: path, Name: "shelf"}

		err := cmd.Run(env.deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "shelf", created.Name)
		assert.Equal(t, "span.code", created.Pairing.CodeLocator)
		assert.Equal(t, labelmkr.SourceDataID, created.Pairing.CodeRule.Source)
		assert.Equal(t, "a.name", created.Pairing.LabelLocator)
		assert.Contains(t, env.stdout.String(), `Imported profile "shelf"`)
	})

	t.Run("refuses to overwrite without --force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shelf.json")
		require.NoError(t, fs.WriteProfileFile(path, shelfProfile()))

		env := newTestEnv(t, nil)
		env.deps.Profiles = profilesWith(shelfProfile())
		cmd := &main.ProfileImportCmd{File: path}

		err := cmd.Run(env.deps)

		require.Error(t, err)
		assert.Equal(t, labelmkr.EINVALID, labelmkr.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "Use --force")
	})
}
