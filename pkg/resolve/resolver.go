package resolve

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/mpkg-project/mpkg/pkg/store"
)

// Index is the lookup capability the resolver needs from the store.
type Index interface {
	LookupByName(ctx context.Context, name string) ([]store.IndexEntry, error)
}

// Chooser picks one entry when a lookup is ambiguous. Implementations
// own their own re-prompting; the resolver only trusts an in-range
// answer.
type Chooser interface {
	Choose(candidates []store.IndexEntry) (int, error)
}

type Resolver struct {
	index   Index
	chooser Chooser
}

func New(index Index, chooser Chooser) *Resolver {
	return &Resolver{
		index:   index,
		chooser: chooser,
	}
}

// Resolve turns a user-typed package identifier into a single index
// entry.
//
// The identifier is first looked up verbatim. When that matches
// nothing and the identifier contains a '-', everything after the last
// '-' is treated as an embedded version: the prefix is looked up again
// and the embedded version must equal the catalog's exactly — the
// fallback never resolves to a different version than the one typed.
// Multiple candidates are handed to the chooser.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (store.IndexEntry, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("identifier", identifier)

	entries, err := r.index.LookupByName(ctx, identifier)
	if err != nil {
		return store.IndexEntry{}, err
	}

	if len(entries) == 0 {
		if loc := strings.LastIndex(identifier, "-"); loc > 0 {
			name, version := identifier[:loc], identifier[loc+1:]
			log.V(2).Info("retrying with embedded version", "name", name, "version", version)
			entries, err = r.index.LookupByName(ctx, name)
			if err != nil {
				return store.IndexEntry{}, err
			}
			if len(entries) > 0 && entries[0].Version != version {
				return store.IndexEntry{}, status.Errorf(status.ErrNotFound, "package %s not found in the index", identifier)
			}
		}
	}

	if len(entries) == 0 {
		return store.IndexEntry{}, status.Errorf(status.ErrNotFound, "package %s not found in the index", identifier)
	}
	if len(entries) == 1 {
		return entries[0], nil
	}

	choice, err := r.chooser.Choose(entries)
	if err != nil {
		return store.IndexEntry{}, status.Errorf(status.ErrInvalidInput, "selecting between %d candidates", len(entries))
	}
	if choice < 0 || choice >= len(entries) {
		return store.IndexEntry{}, status.Errorf(status.ErrAmbiguous, "selection %d out of range", choice)
	}
	log.V(1).Info("resolved package", "name", entries[choice].Name, "version", entries[choice].Version)
	return entries[choice], nil
}
