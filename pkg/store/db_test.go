package store

import (
	"context"
	"testing"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_roundTrip(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	rec := PackageRecord{
		Name:      "curl",
		Version:   "8.6.0",
		Origin:    "ftp/curl",
		OSRelease: "3.2",
		Comment:   "Command line tool for transferring data",
		CPE:       "cpe:2.3:a:haxx:curl:8.6.0",
		Locked:    true,
		Automatic: false,
		Depends:   []string{"libssl", "libidn"},
		Files: []FileRecord{
			{Path: "usr/bin/curl", SHA256: "abc123"},
			{Path: "usr/share/man/man1/curl.1", SHA256: "def456"},
		},
	}
	require.NoError(t, db.Add(ctx, rec))

	got, ok, err := db.Get(ctx, "curl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestDatabase_List_missingFile(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	records, err := db.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestDatabase_Add_replacesByName(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	require.NoError(t, db.Add(ctx, PackageRecord{Name: "curl", Version: "8.5.0"}))
	require.NoError(t, db.Add(ctx, PackageRecord{Name: "curl", Version: "8.6.0"}))

	records, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "8.6.0", records[0].Version)
}

func TestDatabase_Remove(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	require.NoError(t, db.Add(ctx, PackageRecord{Name: "curl", Version: "8.6.0"}))
	require.NoError(t, db.Add(ctx, PackageRecord{Name: "zsh", Version: "5.9"}))

	assert.NoError(t, db.Remove(ctx, "curl"))
	assert.ErrorIs(t, db.Remove(ctx, "curl"), status.ErrNotFound)

	records, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "zsh", records[0].Name)
}

func TestDatabase_SetLocked(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	require.NoError(t, db.Add(ctx, PackageRecord{Name: "curl", Version: "8.6.0"}))
	require.NoError(t, db.SetLocked(ctx, "curl", true))

	rec, ok, err := db.Get(ctx, "curl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.Locked)

	assert.ErrorIs(t, db.SetLocked(ctx, "zsh", true), status.ErrNotFound)
}

func TestDatabase_UpDependents(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))
	db := NewDatabase(fs.NewMemFS(), installedFile)

	require.NoError(t, db.Add(ctx, PackageRecord{Name: "libssl", Version: "3.0"}))
	require.NoError(t, db.Add(ctx, PackageRecord{Name: "curl", Version: "8.6.0", Depends: []string{"libssl"}}))
	require.NoError(t, db.Add(ctx, PackageRecord{Name: "zsh", Version: "5.9"}))

	deps, err := db.UpDependents(ctx, "libssl")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "curl", deps[0].Name)

	deps, err = db.UpDependents(ctx, "zsh")
	require.NoError(t, err)
	assert.Empty(t, deps)
}
