package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mpkg-project/mpkg/pkg/pkgver"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/mpkg-project/mpkg/pkg/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [updates|prime]",
	Short: "list installed packages",
	Long: `List installed packages.

With "updates", every installed package is checked against the index
and only the outdated ones are printed. A package with no index entry
at all is reported as no longer available. With "prime", only packages
that were installed explicitly are printed.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"updates", "up", "prime"},
	RunE:      list,
}

const (
	flagQuiet   = "quiet"
	flagVerbose = "verbose"
	flagOrigin  = "origin"
	flagLocks   = "locks"
)

func init() {
	listCmd.Flags().BoolP(flagQuiet, "q", false, "print package names only")
	listCmd.Flags().Bool(flagVerbose, false, "print release and description columns")
	listCmd.Flags().BoolP(flagOrigin, "o", false, "print package origins")
	listCmd.Flags().BoolP(flagLocks, "l", false, "print locked packages only")
}

func list(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool(flagQuiet)
	verbose, _ := cmd.Flags().GetBool(flagVerbose)
	origin, _ := cmd.Flags().GetBool(flagOrigin)
	locks, _ := cmd.Flags().GetBool(flagLocks)

	var mode string
	if len(args) > 0 {
		switch args[0] {
		case "updates", "up":
			mode = "updates"
		case "prime":
			mode = "prime"
		default:
			return status.Errorf(status.ErrInvalidInput, "unknown list mode %q", args[0])
		}
	}

	packs, err := s.ListInstalled(cmd.Context())
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "No packages installed matching.")
		}
		return status.ErrNoPackages
	}

	out := cmd.OutOrStdout()
	if mode == "updates" {
		return listUpdates(cmd, s, packs, verbose)
	}

	for _, pkg := range packs {
		switch {
		case mode == "prime":
			if !pkg.Automatic {
				fmt.Fprintln(out, pkg.Name)
			}
		case quiet && origin:
			fmt.Fprintln(out, pkg.Origin)
		case quiet:
			fmt.Fprintln(out, pkg.Name)
		case origin:
			fmt.Fprintf(out, "Information for %s:\n\nOrigin:\n%s\n\n", pkg, pkg.Origin)
		case locks:
			if pkg.Locked {
				fmt.Fprintln(out, pkg.String())
			}
		case verbose:
			comment := strings.ReplaceAll(pkg.Comment, `\`, "")
			fmt.Fprintf(out, "%-30s\t%6s\t%s\n", pkg.String(), pkg.OSRelease, comment)
		default:
			fmt.Fprintln(out, pkg.String())
		}
	}
	return nil
}

// listUpdates reports every installed package that is out of date with
// respect to the index, one line per qualifying index entry.
func listUpdates(cmd *cobra.Command, s *store.Local, packs []store.PackageRecord, verbose bool) error {
	out := cmd.OutOrStdout()
	osRelease := s.CurrentOSRelease()

	for _, pkg := range packs {
		entries, err := s.LookupByName(cmd.Context(), pkg.Name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error looking up package name %s: %v\n", pkg.Name, err)
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "%-15s %8s is no longer available.\n", pkg.Name, pkg.Version)
			continue
		}
		printStale(out, pkg, pkgver.Outdated(pkg, entries, osRelease), verbose)
	}
	return nil
}

func printStale(out io.Writer, pkg store.PackageRecord, entries []store.IndexEntry, verbose bool) {
	for _, e := range entries {
		if verbose {
			fmt.Fprintf(out, "%-15s %8s (%s)  <  %-s\n", pkg.Name, pkg.Version, pkg.OSRelease, e.Version)
		} else {
			fmt.Fprintf(out, "%-15s %8s  <  %-8s\n", pkg.Name, pkg.Version, e.Version)
		}
	}
}
