package purge

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/mpkg-project/mpkg/pkg/store"
)

// Store is the slice of the package store the planner needs.
type Store interface {
	ListInstalled(ctx context.Context) ([]store.PackageRecord, error)
	UpDependents(ctx context.Context, pkg store.PackageRecord) ([]store.PackageRecord, error)
	DeletePackage(ctx context.Context, name string) error
}

// Report is the outcome of a bulk removal.
type Report struct {
	// Total is the number of delete attempts.
	Total int
	// Errors is the number of delete attempts that failed.
	Errors int
}

func (r Report) Deleted() int {
	return r.Total - r.Errors
}

// Run removes every installed package without ever removing a package
// before all of its up-dependents are gone. The dependency graph is
// never materialized: each pass deletes the packages that currently
// have no up-dependents, then the installed list is re-fetched and the
// pass repeats until nothing was skipped. A failed delete is counted
// and the run continues; only a failed listing aborts.
func Run(ctx context.Context, s Store, errOut io.Writer) (Report, error) {
	log := logr.FromContextOrDiscard(ctx)

	var report Report
	packs, err := s.ListInstalled(ctx)
	if err != nil {
		return report, err
	}
	if len(packs) == 0 {
		return report, status.ErrNoPackages
	}

	for pass := 1; ; pass++ {
		skipped := 0
		for _, pkg := range packs {
			deps, err := s.UpDependents(ctx, pkg)
			if err != nil {
				log.Error(err, "failed to query dependents", "pkg", pkg.Name)
				continue
			}
			if len(deps) > 0 {
				skipped++
				continue
			}
			if err := s.DeletePackage(ctx, pkg.Name); err != nil {
				fmt.Fprintf(errOut, "Error deleting %s\n", pkg.Name)
				log.Error(err, "failed to delete package", "pkg", pkg.Name)
				report.Errors++
			}
			report.Total++
		}
		log.V(1).Info("completed removal pass", "pass", pass, "skipped", skipped, "total", report.Total)
		if skipped == 0 {
			return report, nil
		}
		// deletions may have emptied someone's dependent set; rescan
		// against a fresh listing
		packs, err = s.ListInstalled(ctx)
		if err != nil {
			return report, err
		}
	}
}

// Autoremove deletes automatically installed packages that no longer
// have any up-dependents, iterating until a pass frees nothing new.
func Autoremove(ctx context.Context, s Store, errOut io.Writer) (Report, error) {
	log := logr.FromContextOrDiscard(ctx)

	var report Report
	packs, err := s.ListInstalled(ctx)
	if err != nil {
		return report, err
	}

	for pass := 1; ; pass++ {
		removed := 0
		for _, pkg := range packs {
			if !pkg.Automatic {
				continue
			}
			deps, err := s.UpDependents(ctx, pkg)
			if err != nil {
				log.Error(err, "failed to query dependents", "pkg", pkg.Name)
				continue
			}
			if len(deps) > 0 {
				continue
			}
			if err := s.DeletePackage(ctx, pkg.Name); err != nil {
				fmt.Fprintf(errOut, "Error deleting %s\n", pkg.Name)
				log.Error(err, "failed to delete package", "pkg", pkg.Name)
				report.Errors++
			} else {
				removed++
			}
			report.Total++
		}
		log.V(1).Info("completed autoremove pass", "pass", pass, "removed", removed)
		if removed == 0 {
			return report, nil
		}
		packs, err = s.ListInstalled(ctx)
		if err != nil {
			return report, err
		}
	}
}
