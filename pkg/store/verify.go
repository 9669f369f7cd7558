package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

// Verify re-hashes every file recorded for every installed package and
// reports the ones that no longer match. A missing or changed file is a
// problem, not an error: verification always covers the whole set.
func (l *Local) Verify(ctx context.Context) (int, []string, error) {
	log := logr.FromContextOrDiscard(ctx)

	records, err := l.db.List(ctx)
	if err != nil {
		return 0, nil, err
	}

	var problems []string
	for _, rec := range records {
		for _, f := range rec.Files {
			sum, err := l.hashFile(f.Path)
			if err != nil {
				if os.IsNotExist(err) {
					problems = append(problems, fmt.Sprintf("%s: missing %s", rec, f.Path))
					continue
				}
				log.Error(err, "failed to hash file", "file", f.Path)
				problems = append(problems, fmt.Sprintf("%s: unreadable %s", rec, f.Path))
				continue
			}
			if f.SHA256 != "" && sum != f.SHA256 {
				problems = append(problems, fmt.Sprintf("%s: checksum mismatch %s", rec, f.Path))
			}
		}
	}
	return len(records), problems, nil
}

func (l *Local) hashFile(path string) (string, error) {
	f, err := l.rootfs.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// sha256File hashes a file on the host filesystem (download cache).
func sha256File(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
