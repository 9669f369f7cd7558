package archiveutil

import (
	"archive/tar"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntar(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	content := []byte("#!/bin/sh\necho hello\n")
	buf := &bytes.Buffer{}
	tw := tar.NewWriter(buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/", Typeflag: tar.TypeDir, Mode: 0755}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/bin/", Typeflag: tar.TypeDir, Mode: 0755}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/bin/hello", Typeflag: tar.TypeReg, Mode: 0755, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "usr/bin/hi", Typeflag: tar.TypeSymlink, Linkname: "hello", Mode: 0777}))
	require.NoError(t, tw.Close())

	rootfs := fs.NewMemFS()
	entries, err := Untar(ctx, buf, rootfs)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "usr/bin/hello", entries[0].Path)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), entries[0].SHA256)

	data, err := rootfs.ReadFile("usr/bin/hello")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}
