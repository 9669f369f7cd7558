package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify installed files against their recorded checksums",
	Args:  cobra.NoArgs,
	RunE:  verify,
}

func verify(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	checked, problems, err := s.Verify(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range problems {
		fmt.Fprintln(cmd.ErrOrStderr(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Packages verified: %d\n", checked)
	if len(problems) > 0 {
		return status.Errorf(status.ErrPartialFailure, "%d problems found", len(problems))
	}
	return nil
}
