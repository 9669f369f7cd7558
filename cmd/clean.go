package cmd

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "remove cached package downloads",
	Args:  cobra.NoArgs,
	RunE:  clean,
}

func clean(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	return s.Clean(cmd.Context())
}
