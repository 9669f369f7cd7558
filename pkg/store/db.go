package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chainguard.dev/apko/pkg/apk/fs"
	"github.com/go-logr/logr"
	"github.com/mpkg-project/mpkg/pkg/status"
	"pault.ag/go/debian/control"
)

// Database is the installed-package database: a control-format file of
// one paragraph per package, kept on the rootfs.
type Database struct {
	rootfs fs.FullFS
	path   string
}

// dbRecord is the on-disk shape of a PackageRecord paragraph.
type dbRecord struct {
	Package   string
	Version   string
	Origin    string
	OSRelease string `control:"OS-Release"`
	Comment   string
	CPE       string `control:"CPE"`
	Locked    string
	Automatic string
	Depends   []string `delim:", "`
	Files     []string `delim:", "`
}

func NewDatabase(rootfs fs.FullFS, path string) *Database {
	return &Database{
		rootfs: rootfs,
		path:   filepath.Clean(path),
	}
}

// List returns every installed package in database order. A missing
// database file means nothing is installed.
func (d *Database) List(ctx context.Context) ([]PackageRecord, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", d.path)

	data, err := d.rootfs.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		log.Error(err, "failed to read package database")
		return nil, status.Errorf(status.ErrStoreFailure, "reading package database")
	}

	dec, err := control.NewDecoder(bytes.NewReader(data), nil)
	if err != nil {
		return nil, status.Errorf(status.ErrStoreFailure, "opening package database")
	}
	var raw []dbRecord
	if err := dec.Decode(&raw); err != nil {
		log.Error(err, "failed to decode package database")
		return nil, status.Errorf(status.ErrStoreFailure, "decoding package database")
	}

	out := make([]PackageRecord, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].record())
	}
	log.V(2).Info("loaded package database", "count", len(out))
	return out, nil
}

// Get returns the record for a named package, or false when it is not
// installed.
func (d *Database) Get(ctx context.Context, name string) (PackageRecord, bool, error) {
	records, err := d.List(ctx)
	if err != nil {
		return PackageRecord{}, false, err
	}
	for _, rec := range records {
		if rec.Name == name {
			return rec, true, nil
		}
	}
	return PackageRecord{}, false, nil
}

// Add appends a record, replacing any previous record with the same
// name.
func (d *Database) Add(ctx context.Context, rec PackageRecord) error {
	records, err := d.List(ctx)
	if err != nil {
		return err
	}
	out := records[:0]
	for _, r := range records {
		if r.Name != rec.Name {
			out = append(out, r)
		}
	}
	out = append(out, rec)
	return d.save(ctx, out)
}

// Remove drops a record by name.
func (d *Database) Remove(ctx context.Context, name string) error {
	records, err := d.List(ctx)
	if err != nil {
		return err
	}
	out := records[:0]
	var found bool
	for _, r := range records {
		if r.Name == name {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return status.Errorf(status.ErrNotFound, "package %s is not installed", name)
	}
	return d.save(ctx, out)
}

// SetLocked updates the lock flag on a record.
func (d *Database) SetLocked(ctx context.Context, name string, locked bool) error {
	records, err := d.List(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].Name == name {
			records[i].Locked = locked
			return d.save(ctx, records)
		}
	}
	return status.Errorf(status.ErrNotFound, "package %s is not installed", name)
}

// UpDependents returns the installed packages that declare name as a
// dependency.
func (d *Database) UpDependents(ctx context.Context, name string) ([]PackageRecord, error) {
	records, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []PackageRecord
	for _, rec := range records {
		for _, dep := range rec.Depends {
			if dep == name {
				out = append(out, rec)
				break
			}
		}
	}
	return out, nil
}

func (d *Database) save(ctx context.Context, records []PackageRecord) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", d.path)

	if err := d.rootfs.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		log.Error(err, "failed to create database directory")
		return status.Errorf(status.ErrStoreFailure, "creating database directory")
	}

	sb := strings.Builder{}
	for i := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeParagraph(&sb, records[i])
	}
	if err := d.rootfs.WriteFile(d.path, []byte(sb.String()), 0644); err != nil {
		log.Error(err, "failed to write package database")
		return status.Errorf(status.ErrStoreFailure, "writing package database")
	}
	log.V(2).Info("saved package database", "count", len(records))
	return nil
}

// writeParagraph renders one record as a control paragraph. Keys are
// written in a fixed order so the database diffs cleanly.
func writeParagraph(sb *strings.Builder, rec PackageRecord) {
	writeField(sb, "Package", rec.Name)
	writeField(sb, "Version", rec.Version)
	writeField(sb, "Origin", rec.Origin)
	writeField(sb, "OS-Release", rec.OSRelease)
	writeField(sb, "Comment", rec.Comment)
	writeField(sb, "CPE", rec.CPE)
	writeField(sb, "Locked", yesNo(rec.Locked))
	writeField(sb, "Automatic", yesNo(rec.Automatic))
	writeField(sb, "Depends", strings.Join(rec.Depends, ", "))
	files := make([]string, 0, len(rec.Files))
	for _, f := range rec.Files {
		files = append(files, f.Path+"@"+f.SHA256)
	}
	writeField(sb, "Files", strings.Join(files, ", "))
}

func writeField(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", key, value)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (r dbRecord) record() PackageRecord {
	files := make([]FileRecord, 0, len(r.Files))
	for _, f := range r.Files {
		path, sum := f, ""
		if i := strings.LastIndex(f, "@"); i >= 0 {
			path, sum = f[:i], f[i+1:]
		}
		files = append(files, FileRecord{Path: path, SHA256: sum})
	}
	return PackageRecord{
		Name:      r.Package,
		Version:   r.Version,
		Origin:    r.Origin,
		OSRelease: r.OSRelease,
		Comment:   r.Comment,
		CPE:       r.CPE,
		Locked:    r.Locked == "yes",
		Automatic: r.Automatic == "yes",
		Depends:   r.Depends,
		Files:     files,
	}
}
