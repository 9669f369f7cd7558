package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/mpkg-project/mpkg/pkg/archiveutil"
	"github.com/mpkg-project/mpkg/pkg/envutil"
	"github.com/mpkg-project/mpkg/pkg/status"
	"golang.org/x/exp/maps"
)

func (l *Local) InstallExplicit(ctx context.Context, name, version string) error {
	seen := map[string]bool{}
	if err := l.install(ctx, name, version, false, seen); err != nil {
		return err
	}
	logr.FromContextOrDiscard(ctx).V(2).Info("installed", "packages", maps.Keys(seen))
	return nil
}

// install fetches, verifies and unpacks one package, installing missing
// dependencies first. Dependencies are recorded as automatic; only the
// requested package is explicit. The seen set guards against dependency
// cycles in a broken catalog.
func (l *Local) install(ctx context.Context, name, version string, automatic bool, seen map[string]bool) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("pkg", name, "version", version)

	if seen[name] {
		return nil
	}
	seen[name] = true

	idx, err := l.index(ctx)
	if err != nil {
		return err
	}
	entry, ok := idx.Get(name, version)
	if !ok {
		return status.Errorf(status.ErrNotFound, "package %s-%s not found in the index", name, version)
	}

	if rec, installed, err := l.db.Get(ctx, name); err != nil {
		return err
	} else if installed && rec.Version == entry.Version {
		log.V(1).Info("package is already installed")
		return nil
	}

	for _, dep := range entry.Depends {
		if _, installed, err := l.db.Get(ctx, dep); err != nil {
			return err
		} else if installed {
			continue
		}
		candidates := idx.Lookup(dep)
		if len(candidates) == 0 {
			return status.Errorf(status.ErrNotFound, "dependency %s of %s not found in the index", dep, name)
		}
		if err := l.install(ctx, candidates[0].Name, candidates[0].Version, true, seen); err != nil {
			return fmt.Errorf("installing dependency %s: %w", dep, err)
		}
	}

	path, err := l.fetchPackage(ctx, entry)
	if err != nil {
		return err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return status.Errorf(status.ErrStoreFailure, "opening package %s", path)
	}
	defer f.Close()

	log.V(1).Info("unpacking package", "path", path)
	files, err := archiveutil.Xuntar(ctx, f, l.rootfs)
	if err != nil {
		return status.Errorf(status.ErrStoreFailure, "unpacking %s", entry)
	}

	records := make([]FileRecord, 0, len(files))
	for _, e := range files {
		records = append(records, FileRecord{Path: e.Path, SHA256: e.SHA256})
	}

	return l.db.Add(ctx, PackageRecord{
		Name:      entry.Name,
		Version:   entry.Version,
		Origin:    entry.Origin,
		OSRelease: entry.OSRelease,
		Comment:   entry.Comment,
		Automatic: automatic,
		Depends:   entry.Depends,
		Files:     records,
	})
}

// Download fetches the payload for an index entry into the cache
// without installing it, optionally including its dependencies.
func (l *Local) Download(ctx context.Context, name, version string, withDepends bool) ([]string, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := idx.Get(name, version)
	if !ok {
		return nil, status.Errorf(status.ErrNotFound, "package %s-%s not found in the index", name, version)
	}

	var paths []string
	path, err := l.fetchPackage(ctx, entry)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	if withDepends {
		for _, dep := range entry.Depends {
			candidates := idx.Lookup(dep)
			if len(candidates) == 0 {
				return nil, status.Errorf(status.ErrNotFound, "dependency %s not found in the index", dep)
			}
			path, err := l.fetchPackage(ctx, candidates[0])
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// fetchPackage downloads an entry's payload and verifies its checksum.
func (l *Local) fetchPackage(ctx context.Context, entry IndexEntry) (string, error) {
	if len(l.cfg.Repositories) == 0 {
		return "", status.Errorf(status.ErrStoreFailure, "no repositories configured")
	}

	filename := entry.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s-%s.mpkg.txz", entry.Name, entry.Version)
	}

	var lastErr error
	for _, repo := range l.cfg.Repositories {
		src := fmt.Sprintf("%s/%s", envutil.ExpandEnv(repo.URL), filename)
		path, err := l.dl.Download(ctx, src)
		if err != nil {
			lastErr = status.Errorf(status.ErrStoreFailure, "downloading %s", src)
			continue
		}
		if entry.SHA256 != "" {
			sum, err := sha256File(path)
			if err != nil {
				return "", status.Errorf(status.ErrStoreFailure, "hashing %s", path)
			}
			if sum != entry.SHA256 {
				return "", status.Errorf(status.ErrStoreFailure, "checksum mismatch for %s", entry)
			}
		}
		return path, nil
	}
	return "", lastErr
}
