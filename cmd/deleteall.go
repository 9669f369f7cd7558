package cmd

import (
	"errors"
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/purge"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var deleteAllCmd = &cobra.Command{
	Use:   "deleteall",
	Short: "remove every installed package in dependency order",
	Args:  cobra.NoArgs,
	RunE:  deleteAll,
}

func deleteAll(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	report, err := purge.Run(cmd.Context(), s, cmd.ErrOrStderr())
	if err != nil {
		if errors.Is(err, status.ErrNoPackages) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No packages installed.")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packages deleted: %d\nErrors: %d\nTotal: %d\n",
		report.Deleted(), report.Errors, report.Total)
	if report.Errors > 0 {
		return status.Errorf(status.ErrPartialFailure, "%d of %d deletions failed", report.Errors, report.Total)
	}
	return nil
}
