package pkgver

import "github.com/mpkg-project/mpkg/pkg/store"

// Outdated returns the index entries that make an installed package
// stale. Each entry is judged independently: a package can produce
// multiple outdated lines when several index entries qualify.
//
// An entry qualifies when its version orders above the installed one,
// or when the package was built against an older platform release than
// the one currently running. The release check only requires the
// installed version to be set and compares the package's own release
// tag against the running release, never the index entry's; a package
// built for an older release is stale even at an equal version.
func Outdated(pkg store.PackageRecord, entries []store.IndexEntry, osRelease string) []store.IndexEntry {
	var stale []store.IndexEntry
	for _, entry := range entries {
		if entry.Version != "" && Compare(pkg.Version, entry.Version) < 0 {
			stale = append(stale, entry)
			continue
		}
		if pkg.Version != "" && Compare(pkg.OSRelease, osRelease) < 0 {
			stale = append(stale, entry)
		}
	}
	return stale
}
