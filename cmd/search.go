package cmd

import (
	"github.com/mpkg-project/mpkg/pkg/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "search the index by name or description",
	Long: `Search the index for packages whose name or description matches
a glob term. Multiple terms are queried one at a time, in order;
terms without matches are skipped silently.`,
	RunE: searchRun,
}

func searchRun(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	return search.Run(cmd.Context(), s, cmd.OutOrStdout(), args)
}
