package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show package database statistics",
	Args:  cobra.NoArgs,
	RunE:  stats,
}

func stats(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	st, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Local package database:\n\tInstalled packages: %d\n\nRemote package database:\n\tPackages available: %d\n", st.Installed, st.Available)
	return nil
}
