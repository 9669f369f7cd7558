package store

import "context"

// Store is the package-store capability the command surface is built
// on. Local implements it against the on-disk databases; tests use
// in-memory fakes.
type Store interface {
	// LookupByName returns the index entries matching a package name
	// verbatim, in catalog order. An empty slice is not an error.
	LookupByName(ctx context.Context, name string) ([]IndexEntry, error)

	// Search returns the index entries whose name or comment matches
	// the glob term.
	Search(ctx context.Context, term string) ([]IndexEntry, error)

	// ListInstalled returns every installed package.
	ListInstalled(ctx context.Context) ([]PackageRecord, error)

	// UpDependents returns the installed packages that declare pkg as
	// a dependency. An empty result means pkg is safe to remove.
	UpDependents(ctx context.Context, pkg PackageRecord) ([]PackageRecord, error)

	// DeletePackage removes a single installed package.
	DeletePackage(ctx context.Context, name string) error

	// InstallExplicit installs the exact (name, version) pair, marking
	// it as requested by the user rather than pulled in as a dependency.
	InstallExplicit(ctx context.Context, name, version string) error

	// CurrentOSRelease reports the platform release tag mpkg is
	// running on.
	CurrentOSRelease() string
}
