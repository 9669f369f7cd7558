package search

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/mpkg-project/mpkg/pkg/store"
)

// Index is the query capability the aggregator needs from the store.
type Index interface {
	Search(ctx context.Context, term string) ([]store.IndexEntry, error)
}

// Run queries the index once per term, in order, and writes every hit
// as a name/version/comment line. A term that matches nothing produces
// no output and no error: multi-term scans are expected to have misses.
// An empty term list fails before any query is issued. A term whose
// query fails is counted and the rest of the terms still run.
func Run(ctx context.Context, idx Index, out io.Writer, terms []string) error {
	log := logr.FromContextOrDiscard(ctx)

	if len(terms) == 0 {
		return status.Errorf(status.ErrInvalidInput, "search terms required")
	}

	failed := 0
	for _, term := range terms {
		entries, err := idx.Search(ctx, term)
		if err != nil {
			log.Error(err, "search term failed", "term", term)
			failed++
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\n", e.Name, e.Version, e.Comment)
		}
	}
	if failed > 0 {
		return status.Errorf(status.ErrPartialFailure, "%d of %d search terms failed", failed, len(terms))
	}
	return nil
}
