package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locksCmd = &cobra.Command{
	Use:   "locks",
	Short: "list locked packages",
	Args:  cobra.NoArgs,
	RunE:  listLocks,
}

func listLocks(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	packs, err := s.ListInstalled(cmd.Context())
	if err != nil {
		return err
	}
	for _, pkg := range packs {
		if pkg.Locked {
			fmt.Fprintln(cmd.OutOrStdout(), pkg.String())
		}
	}
	return nil
}
