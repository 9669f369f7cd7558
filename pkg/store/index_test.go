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

const testIndex = `Package: curl
Version: 8.6.0
Comment: Command line tool for transferring data
Origin: ftp/curl
OS-Release: 3.2
Filename: curl-8.6.0.mpkg.txz
SHA256: abc123
Depends: libssl, libidn

Package: lua
Version: 5.3.6
Comment: Small embeddable scripting language
Origin: lang/lua53

Package: lua
Version: 5.4.6
Comment: Small embeddable scripting language
Origin: lang/lua54
`

func newTestIndex(t *testing.T) *Index {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	rootfs := fs.NewMemFS()
	require.NoError(t, rootfs.MkdirAll(dbDir, 0755))
	require.NoError(t, rootfs.WriteFile(indexFile, []byte(testIndex), 0644))

	idx, err := loadIndex(ctx, rootfs, indexFile)
	require.NoError(t, err)
	return idx
}

func TestLoadIndex(t *testing.T) {
	idx := newTestIndex(t)
	assert.Equal(t, 3, idx.Count())

	entries := idx.Lookup("curl")
	require.Len(t, entries, 1)
	assert.Equal(t, "8.6.0", entries[0].Version)
	assert.Equal(t, "3.2", entries[0].OSRelease)
	assert.Equal(t, []string{"libssl", "libidn"}, entries[0].Depends)
}

func TestLoadIndex_missingCache(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.New(t))

	_, err := loadIndex(ctx, fs.NewMemFS(), indexFile)
	assert.ErrorIs(t, err, status.ErrIndexUnavailable)
}

func TestIndex_Lookup(t *testing.T) {
	idx := newTestIndex(t)

	assert.Len(t, idx.Lookup("lua"), 2)
	assert.Empty(t, idx.Lookup("nonexistent"))
}

func TestIndex_Get(t *testing.T) {
	idx := newTestIndex(t)

	entry, ok := idx.Get("lua", "5.4.6")
	require.True(t, ok)
	assert.Equal(t, "lang/lua54", entry.Origin)

	_, ok = idx.Get("lua", "5.5.0")
	assert.False(t, ok)
}

func TestIndex_Search(t *testing.T) {
	idx := newTestIndex(t)

	t.Run("glob on name", func(t *testing.T) {
		assert.Len(t, idx.Search("cur*"), 1)
		assert.Len(t, idx.Search("lua"), 2)
	})
	t.Run("glob on comment", func(t *testing.T) {
		assert.Len(t, idx.Search("Small embeddable*"), 2)
	})
	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, idx.Search("*nothingmatches*"))
	})
}
