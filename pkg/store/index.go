package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/hashicorp/go-getter"
	"github.com/klauspost/compress/gzip"
	"github.com/mpkg-project/mpkg/pkg/envutil"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/ulikunitz/xz"
	"pault.ag/go/debian/control"
)

const (
	IndexFileGzip = "index.gz"
	IndexFileXZ   = "index.xz"
)

// Index is the catalog of installable packages, parsed from the cached
// index file.
type Index struct {
	entries []IndexEntry
	source  string
}

// indexRecord is the on-disk shape of one catalog paragraph.
type indexRecord struct {
	Package   string
	Version   string
	Comment   string
	Origin    string
	OSRelease string `control:"OS-Release"`
	Filename  string
	SHA256    string   `control:"SHA256"`
	Depends   []string `delim:", "`
}

// loadIndex parses the cached index file from the rootfs.
func loadIndex(ctx context.Context, rootfs fs.FullFS, path string) (*Index, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)

	data, err := rootfs.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.Errorf(status.ErrIndexUnavailable, "index has not been fetched, run 'mpkg index'")
		}
		log.Error(err, "failed to read index cache")
		return nil, status.Errorf(status.ErrIndexUnavailable, "reading index cache")
	}

	dec, err := control.NewDecoder(bytes.NewReader(data), nil)
	if err != nil {
		return nil, status.Errorf(status.ErrIndexUnavailable, "opening index cache")
	}
	var raw []indexRecord
	if err := dec.Decode(&raw); err != nil {
		log.Error(err, "failed to decode index cache")
		return nil, status.Errorf(status.ErrIndexUnavailable, "decoding index cache")
	}

	entries := make([]IndexEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, IndexEntry{
			Name:      r.Package,
			Version:   r.Version,
			Comment:   r.Comment,
			Origin:    r.Origin,
			OSRelease: r.OSRelease,
			Filename:  r.Filename,
			SHA256:    r.SHA256,
			Depends:   r.Depends,
		})
	}
	log.V(1).Info("loaded index", "count", len(entries))
	return &Index{entries: entries, source: path}, nil
}

func (idx *Index) Count() int {
	return len(idx.entries)
}

// Lookup returns the entries whose name matches verbatim, preserving
// catalog order.
func (idx *Index) Lookup(name string) []IndexEntry {
	var out []IndexEntry
	for _, e := range idx.entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry for an exact (name, version) pair.
func (idx *Index) Get(name, version string) (IndexEntry, bool) {
	for _, e := range idx.entries {
		if e.Name == name && e.Version == version {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Search returns the entries whose name or comment matches the
// full-string glob term.
func (idx *Index) Search(term string) []IndexEntry {
	var out []IndexEntry
	for _, e := range idx.entries {
		if globMatch(term, e.Name) || globMatch(term, e.Comment) {
			out = append(out, e)
		}
	}
	return out
}

func globMatch(pattern, s string) bool {
	ok, err := path.Match(pattern, s)
	return err == nil && ok
}

// fetchIndex downloads the catalog from a repository and caches it on
// the rootfs. It prefers the gzip form and falls back to xz.
func fetchIndex(ctx context.Context, rootfs fs.FullFS, repository, dst string) error {
	repository = envutil.ExpandEnv(repository)

	err := downloadIndexFile(ctx, rootfs, repository, dst, IndexFileGzip, func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	})
	if err == nil {
		return nil
	}

	return downloadIndexFile(ctx, rootfs, repository, dst, IndexFileXZ, func(r io.Reader) (io.ReadCloser, error) {
		reader, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(reader), nil
	})
}

func downloadIndexFile(ctx context.Context, rootfs fs.FullFS, repository, dst, filename string, reader func(r io.Reader) (io.ReadCloser, error)) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("repo", repository, "filename", filename)
	log.V(1).Info("downloading index")

	src := fmt.Sprintf("%s/%s", repository, filename)
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", uuid.NewString(), filename))
	defer func() {
		_ = os.Remove(tmp)
	}()

	client := &getter.Client{
		Ctx:             ctx,
		Src:             src,
		Dst:             tmp,
		Mode:            getter.ClientModeFile,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		log.V(1).Info("failed to download index", "src", src)
		return status.Errorf(status.ErrIndexUnavailable, "downloading index from %s", src)
	}

	f, err := os.Open(filepath.Clean(tmp))
	if err != nil {
		return status.Errorf(status.ErrIndexUnavailable, "opening downloaded index")
	}
	defer f.Close()

	gr, err := reader(f)
	if err != nil {
		return status.Errorf(status.ErrIndexUnavailable, "decompressing index")
	}
	defer gr.Close()

	data, err := io.ReadAll(gr)
	if err != nil {
		return status.Errorf(status.ErrIndexUnavailable, "reading index")
	}

	if err := rootfs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return status.Errorf(status.ErrStoreFailure, "creating index directory")
	}
	if err := rootfs.WriteFile(filepath.Clean(dst), data, 0644); err != nil {
		return status.Errorf(status.ErrStoreFailure, "writing index cache")
	}
	log.V(1).Info("successfully cached index", "bytes", len(data))
	return nil
}
