package store

import (
	"context"
	"testing"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	v1 "github.com/mpkg-project/mpkg/pkg/api/v1"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, context.Context) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	l, err := NewLocal(v1.ConfigSpec{CacheDir: t.TempDir()}, fs.NewMemFS())
	require.NoError(t, err)
	return l, ctx
}

func TestLocal_DeletePackage(t *testing.T) {
	l, ctx := newTestLocal(t)

	require.NoError(t, l.rootfs.MkdirAll("usr/bin", 0755))
	require.NoError(t, l.rootfs.WriteFile("usr/bin/curl", []byte("binary"), 0755))
	require.NoError(t, l.db.Add(ctx, PackageRecord{
		Name:    "curl",
		Version: "8.6.0",
		Files:   []FileRecord{{Path: "usr/bin/curl", SHA256: "abc"}},
	}))

	t.Run("removes files and the record", func(t *testing.T) {
		require.NoError(t, l.DeletePackage(ctx, "curl"))

		_, err := l.rootfs.Stat("usr/bin/curl")
		assert.Error(t, err)

		_, ok, err := l.db.Get(ctx, "curl")
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("not installed", func(t *testing.T) {
		assert.ErrorIs(t, l.DeletePackage(ctx, "curl"), status.ErrNotFound)
	})
	t.Run("locked packages are refused", func(t *testing.T) {
		require.NoError(t, l.db.Add(ctx, PackageRecord{Name: "zsh", Version: "5.9", Locked: true}))
		assert.ErrorIs(t, l.DeletePackage(ctx, "zsh"), status.ErrInvalidInput)
	})
}

func TestLocal_PackageByFile(t *testing.T) {
	l, ctx := newTestLocal(t)

	require.NoError(t, l.db.Add(ctx, PackageRecord{
		Name:    "curl",
		Version: "8.6.0",
		Files:   []FileRecord{{Path: "usr/bin/curl", SHA256: "abc"}},
	}))

	t.Run("absolute path", func(t *testing.T) {
		pkg, err := l.PackageByFile(ctx, "/usr/bin/curl")
		require.NoError(t, err)
		require.NotNil(t, pkg)
		assert.Equal(t, "curl", pkg.Name)
	})
	t.Run("relative path", func(t *testing.T) {
		pkg, err := l.PackageByFile(ctx, "usr/bin/curl")
		require.NoError(t, err)
		assert.NotNil(t, pkg)
	})
	t.Run("unowned file is not an error", func(t *testing.T) {
		pkg, err := l.PackageByFile(ctx, "/etc/passwd")
		require.NoError(t, err)
		assert.Nil(t, pkg)
	})
}

func TestLocal_Info(t *testing.T) {
	l, ctx := newTestLocal(t)

	require.NoError(t, l.db.Add(ctx, PackageRecord{
		Name:    "curl",
		Version: "8.6.0",
		Comment: "Command line tool for transferring data",
		Depends: []string{"libssl"},
	}))

	text, err := l.Info(ctx, "curl")
	require.NoError(t, err)
	assert.Contains(t, text, "curl-8.6.0")
	assert.Contains(t, text, "Comment: Command line tool for transferring data")
	assert.Contains(t, text, "Depends: libssl")
	assert.Contains(t, text, "Locked: no")
}

func TestLocal_FetchIndex_noRepositories(t *testing.T) {
	l, ctx := newTestLocal(t)

	assert.ErrorIs(t, l.FetchIndex(ctx), status.ErrIndexUnavailable)
}

func TestLocal_CurrentOSRelease(t *testing.T) {
	t.Run("configured override wins", func(t *testing.T) {
		l, err := NewLocal(v1.ConfigSpec{CacheDir: t.TempDir(), OSRelease: "3.2"}, fs.NewMemFS())
		require.NoError(t, err)
		assert.Equal(t, "3.2", l.CurrentOSRelease())
	})
	t.Run("read from os-release", func(t *testing.T) {
		rootfs := fs.NewMemFS()
		require.NoError(t, rootfs.MkdirAll("etc", 0755))
		require.NoError(t, rootfs.WriteFile("etc/os-release", []byte("NAME=TestOS\nVERSION_ID=\"3.2\"\n"), 0644))

		l, err := NewLocal(v1.ConfigSpec{CacheDir: t.TempDir()}, rootfs)
		require.NoError(t, err)
		assert.Equal(t, "3.2", l.CurrentOSRelease())
	})
	t.Run("missing file", func(t *testing.T) {
		l, err := NewLocal(v1.ConfigSpec{CacheDir: t.TempDir()}, fs.NewMemFS())
		require.NoError(t, err)
		assert.Equal(t, "unknown", l.CurrentOSRelease())
	})
}

func TestLocal_Settings(t *testing.T) {
	l, ctx := newTestLocal(t)

	_, ok, err := l.Setting(ctx, "mirror_region")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.SetSetting(ctx, "mirror_region", "au"))
	require.NoError(t, l.SetSetting(ctx, "handle_rc_scripts", "yes"))

	value, ok, err := l.Setting(ctx, "mirror_region")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "au", value)

	keys, err := l.SettingKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"handle_rc_scripts", "mirror_region"}, keys)
}
