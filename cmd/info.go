package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>...",
	Short: "show details for a package",
	Args:  cobra.MinimumNArgs(1),
	RunE:  info,
}

func info(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	var firstErr error
	for _, name := range args {
		text, err := s.Info(cmd.Context(), name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error looking up package %s: %v\n", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return firstErr
}
