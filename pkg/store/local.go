package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	v1 "github.com/mpkg-project/mpkg/pkg/api/v1"
	"github.com/mpkg-project/mpkg/pkg/downloader"
	"github.com/mpkg-project/mpkg/pkg/status"
)

const (
	dbDir         = "var/db/mpkg"
	installedFile = dbDir + "/installed"
	indexFile     = dbDir + "/index"
	settingsFile  = dbDir + "/settings.json"
)

// Local implements Store against the on-disk package database, the
// cached index and the configured repositories.
type Local struct {
	cfg    v1.ConfigSpec
	rootfs fs.FullFS
	db     *Database
	dl     *downloader.Downloader

	idx       *Index
	osRelease string
}

func NewLocal(cfg v1.ConfigSpec, rootfs fs.FullFS) (*Local, error) {
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		d, err := os.UserCacheDir()
		if err != nil {
			d = os.TempDir()
		}
		cacheDir = filepath.Join(d, "mpkg")
	}
	dl, err := downloader.NewDownloader(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("preparing download cache: %w", err)
	}
	return &Local{
		cfg:    cfg,
		rootfs: rootfs,
		db:     NewDatabase(rootfs, installedFile),
		dl:     dl,
	}, nil
}

// index lazily loads the cached catalog.
func (l *Local) index(ctx context.Context) (*Index, error) {
	if l.idx != nil {
		return l.idx, nil
	}
	idx, err := loadIndex(ctx, l.rootfs, indexFile)
	if err != nil {
		return nil, err
	}
	l.idx = idx
	return idx, nil
}

func (l *Local) LookupByName(ctx context.Context, name string) ([]IndexEntry, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Lookup(name), nil
}

func (l *Local) Search(ctx context.Context, term string) ([]IndexEntry, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Search(term), nil
}

func (l *Local) ListInstalled(ctx context.Context) ([]PackageRecord, error) {
	return l.db.List(ctx)
}

func (l *Local) UpDependents(ctx context.Context, pkg PackageRecord) ([]PackageRecord, error) {
	return l.db.UpDependents(ctx, pkg.Name)
}

func (l *Local) DeletePackage(ctx context.Context, name string) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("pkg", name)

	rec, ok, err := l.db.Get(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return status.Errorf(status.ErrNotFound, "package %s is not installed", name)
	}
	if rec.Locked {
		return status.Errorf(status.ErrInvalidInput, "package %s is locked", name)
	}

	// remove the payload first; a file that is already gone is not an
	// error.
	for _, f := range rec.Files {
		if err := l.rootfs.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Error(err, "failed to remove file", "file", f.Path)
			return status.Errorf(status.ErrStoreFailure, "removing %s", f.Path)
		}
	}
	log.V(1).Info("removed package files", "count", len(rec.Files))

	return l.db.Remove(ctx, name)
}

// FetchIndex downloads the catalog from the first reachable repository
// and refreshes the cache.
func (l *Local) FetchIndex(ctx context.Context) error {
	if len(l.cfg.Repositories) == 0 {
		return status.Errorf(status.ErrIndexUnavailable, "no repositories configured")
	}
	var lastErr error
	for _, repo := range l.cfg.Repositories {
		if err := fetchIndex(ctx, l.rootfs, repo.URL, indexFile); err != nil {
			lastErr = err
			continue
		}
		l.idx = nil // force a reload on next use
		return nil
	}
	return lastErr
}

// Info renders the installed record for a package, falling back to the
// index for packages that are not installed.
func (l *Local) Info(ctx context.Context, name string) (string, error) {
	rec, ok, err := l.db.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if ok {
		return formatInfo(rec), nil
	}
	idx, err := l.index(ctx)
	if err != nil {
		return "", err
	}
	entries := idx.Lookup(name)
	if len(entries) == 0 {
		return "", status.Errorf(status.ErrNotFound, "package %s not found", name)
	}
	e := entries[0]
	return formatInfo(PackageRecord{
		Name:      e.Name,
		Version:   e.Version,
		Origin:    e.Origin,
		OSRelease: e.OSRelease,
		Comment:   e.Comment,
		Depends:   e.Depends,
	}), nil
}

func formatInfo(rec PackageRecord) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s-%s\n", rec.Name, rec.Version)
	if rec.Comment != "" {
		fmt.Fprintf(&sb, "Comment: %s\n", rec.Comment)
	}
	if rec.Origin != "" {
		fmt.Fprintf(&sb, "Origin: %s\n", rec.Origin)
	}
	if rec.OSRelease != "" {
		fmt.Fprintf(&sb, "OS release: %s\n", rec.OSRelease)
	}
	if rec.CPE != "" {
		fmt.Fprintf(&sb, "CPE: %s\n", rec.CPE)
	}
	if len(rec.Depends) > 0 {
		fmt.Fprintf(&sb, "Depends: %s\n", strings.Join(rec.Depends, ", "))
	}
	fmt.Fprintf(&sb, "Locked: %s\nAutomatic: %s\n", yesNo(rec.Locked), yesNo(rec.Automatic))
	return sb.String()
}

func (l *Local) Stats(ctx context.Context) (Stats, error) {
	records, err := l.db.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	idx, err := l.index(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Installed: len(records),
		Available: idx.Count(),
	}, nil
}

func (l *Local) SetLocked(ctx context.Context, name string, locked bool) error {
	return l.db.SetLocked(ctx, name, locked)
}

// PackageByFile returns the installed package that laid down the given
// file, or nil when no package owns it.
func (l *Local) PackageByFile(ctx context.Context, path string) (*PackageRecord, error) {
	records, err := l.db.List(ctx)
	if err != nil {
		return nil, err
	}
	path = strings.TrimPrefix(filepath.Clean(path), "/")
	for i := range records {
		for _, f := range records[i].Files {
			if f.Path == path {
				return &records[i], nil
			}
		}
	}
	return nil, nil
}

// Clean drops all cached downloads.
func (l *Local) Clean(ctx context.Context) error {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("deleting cache dir", "dir", l.dl.Dir())
	if err := os.RemoveAll(l.dl.Dir()); err != nil {
		return fmt.Errorf("removing cache dir: %w", err)
	}
	return nil
}
