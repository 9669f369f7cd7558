package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whichCmd = &cobra.Command{
	Use:   "which <file>",
	Short: "find the package that owns a file",
	Args:  cobra.ExactArgs(1),
	RunE:  which,
}

func init() {
	whichCmd.Flags().BoolP(flagQuiet, "q", false, "print the package name only")
	whichCmd.Flags().BoolP(flagOrigin, "o", false, "print the package origin")
}

func which(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	pkg, err := s.PackageByFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	// unowned files are not an error
	if pkg == nil {
		return nil
	}

	quiet, _ := cmd.Flags().GetBool(flagQuiet)
	origin, _ := cmd.Flags().GetBool(flagOrigin)
	out := cmd.OutOrStdout()

	switch {
	case origin:
		fmt.Fprintln(out, pkg.Origin)
	case quiet:
		fmt.Fprintln(out, pkg.Name)
	default:
		fmt.Fprintf(out, "%s was installed by package %s\n", args[0], pkg)
	}
	return nil
}
