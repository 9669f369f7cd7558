package archiveutil

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Entry is a regular file written by Untar, with the SHA256 of its
// content as it was laid down.
type Entry struct {
	Path   string
	SHA256 string
}

// Guntar is the same as Untar, but it first decodes the gzipped archive.
func Guntar(ctx context.Context, r io.Reader, rootfs fs.FullFS) ([]Entry, error) {
	gzp, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gzp.Close()
	return Untar(ctx, gzp, rootfs)
}

// Xuntar is the same as Untar, but it first decodes the xz archive.
func Xuntar(ctx context.Context, r io.Reader, rootfs fs.FullFS) ([]Entry, error) {
	xzp, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return Untar(ctx, xzp, rootfs)
}

// Untar expands a tar archive into the given filesystem and reports
// every regular file it wrote.
func Untar(ctx context.Context, r io.Reader, rootfs fs.FullFS) ([]Entry, error) {
	log := logr.FromContextOrDiscard(ctx)
	tr := tar.NewReader(r)

	var entries []Entry
	for {
		header, err := tr.Next()
		switch {
		case err == io.EOF:
			return entries, nil
		case err != nil:
			log.Error(err, "failed to read file from archive")
			return nil, err
		case header == nil:
			continue
		}

		target := filepath.Clean(header.Name)

		switch header.Typeflag {
		case tar.TypeDir:
			log.V(5).Info("creating directory", "target", target)
			if _, err := rootfs.Stat(target); err != nil {
				if err := rootfs.MkdirAll(target, 0755); err != nil {
					log.Error(err, "failed to create directory", "target", target)
					return nil, err
				}
			}
		case tar.TypeSymlink:
			log.V(5).Info("creating symlink", "target", target, "source", header.Linkname)
			if err := rootfs.Symlink(header.Linkname, target); err != nil && !os.IsExist(err) {
				log.Error(err, "failed to create symlink", "target", target)
				return nil, err
			}
		case tar.TypeReg:
			log.V(5).Info("creating file", "target", target, "mode", header.Mode)
			if dir := filepath.Dir(target); dir != "" {
				if err := rootfs.MkdirAll(dir, 0755); err != nil {
					log.Error(err, "failed to create parent directory", "target", target)
					return nil, err
				}
			}
			f, err := rootfs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_RDWR, os.FileMode(header.Mode))
			if err != nil {
				log.Error(err, "failed to open file", "target", target)
				return nil, err
			}

			h := sha256.New()
			if _, err := io.Copy(f, io.TeeReader(tr, h)); err != nil {
				log.Error(err, "failed to extract file", "target", target)
				_ = f.Close()
				return nil, err
			}
			_ = f.Close()

			entries = append(entries, Entry{
				Path:   target,
				SHA256: hex.EncodeToString(h.Sum(nil)),
			})
		}
	}
}
