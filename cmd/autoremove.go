package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/purge"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var autoremoveCmd = &cobra.Command{
	Use:   "autoremove",
	Short: "remove automatically installed packages that nothing depends on",
	Args:  cobra.NoArgs,
	RunE:  autoremove,
}

func autoremove(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	report, err := purge.Autoremove(cmd.Context(), s, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packages deleted: %d\nErrors: %d\n", report.Deleted(), report.Errors)
	if report.Errors > 0 {
		return status.Errorf(status.ErrPartialFailure, "%d deletions failed", report.Errors)
	}
	return nil
}
