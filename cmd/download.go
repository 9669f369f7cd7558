package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/resolve"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <package>...",
	Short: "download packages into the cache without installing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  download,
}

const flagDepends = "dependencies"

func init() {
	downloadCmd.Flags().BoolP(flagDepends, "d", false, "also download dependencies")
}

func download(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	withDepends, _ := cmd.Flags().GetBool(flagDepends)

	resolver := resolve.New(s, &resolve.TerminalChooser{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
	})

	var firstErr error
	for _, identifier := range args {
		entry, err := resolver.Resolve(cmd.Context(), identifier)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		paths, err := s.Download(cmd.Context(), entry.Name, entry.Version, withDepends)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed to download %s: %v\n", entry, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}
	return firstErr
}
