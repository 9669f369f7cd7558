package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <package>...",
	Short: "remove installed packages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  deleteRun,
}

func deleteRun(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	var firstErr error
	for _, name := range args {
		if err := s.DeletePackage(cmd.Context(), name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error deleting %s: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
