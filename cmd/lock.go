package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock <name>...",
	Short: "lock packages against deletion and upgrade",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setLocked(cmd, args, true)
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <name>...",
	Short: "remove the lock from packages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setLocked(cmd, args, false)
	},
}

func setLocked(cmd *cobra.Command, args []string, locked bool) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	var firstErr error
	for _, name := range args {
		if err := s.SetLocked(cmd.Context(), name, locked); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error updating %s: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
