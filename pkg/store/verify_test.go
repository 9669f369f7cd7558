package store

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Verify(t *testing.T) {
	l, ctx := newTestLocal(t)

	content := []byte("binary")
	sum := sha256.Sum256(content)

	require.NoError(t, l.rootfs.MkdirAll("usr/bin", 0755))
	require.NoError(t, l.rootfs.WriteFile("usr/bin/curl", content, 0755))
	require.NoError(t, l.db.Add(ctx, PackageRecord{
		Name:    "curl",
		Version: "8.6.0",
		Files: []FileRecord{
			{Path: "usr/bin/curl", SHA256: hex.EncodeToString(sum[:])},
		},
	}))

	t.Run("clean set", func(t *testing.T) {
		checked, problems, err := l.Verify(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, checked)
		assert.Empty(t, problems)
	})
	t.Run("modified file", func(t *testing.T) {
		require.NoError(t, l.rootfs.WriteFile("usr/bin/curl", []byte("tampered"), 0755))

		_, problems, err := l.Verify(ctx)
		require.NoError(t, err)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], "checksum mismatch usr/bin/curl")
	})
	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, l.rootfs.Remove("usr/bin/curl"))

		_, problems, err := l.Verify(ctx)
		require.NoError(t, err)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], "missing usr/bin/curl")
	})
}
