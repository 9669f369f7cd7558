package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var cpeCmd = &cobra.Command{
	Use:   "cpe",
	Short: "print the CPE string of every installed package",
	Args:  cobra.NoArgs,
	RunE:  cpe,
}

func cpe(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	packs, err := s.ListInstalled(cmd.Context())
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No packages installed.")
		return status.ErrNoPackages
	}

	found := false
	for _, pkg := range packs {
		if pkg.CPE == "" {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), pkg.CPE)
		found = true
	}
	if !found {
		return status.Errorf(status.ErrNotFound, "no CPE information available")
	}
	return nil
}
