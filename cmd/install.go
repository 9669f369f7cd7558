package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/resolve"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "install packages from the index",
	Long: `Install one or more packages from the index.

An identifier may carry an embedded version after the last '-'
(e.g. "curl-8.6.0"); it must match the indexed version exactly.
When a name matches several index entries you will be asked to pick
one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: install,
}

func install(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

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
		if err := s.InstallExplicit(cmd.Context(), entry.Name, entry.Version); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed to install %s: %v\n", entry, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
