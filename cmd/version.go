package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/pkgver"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version [-t <v1> <v2>]",
	Short: "print the mpkg version, or compare two package versions",
	RunE:  versionRun,
}

const flagTest = "test"

func init() {
	versionCmd.Flags().BoolP(flagTest, "t", false, "compare two version strings")
}

func versionRun(cmd *cobra.Command, args []string) error {
	test, _ := cmd.Flags().GetBool(flagTest)
	out := cmd.OutOrStdout()

	if test {
		if len(args) != 2 {
			return status.Errorf(status.ErrInvalidInput, "usage: mpkg version -t <v1> <v2>")
		}
		fmt.Fprintln(out, pkgver.Symbol(pkgver.Compare(args[0], args[1])))
		return nil
	}

	fmt.Fprintf(out, "mpkg %s\n", command.Version)
	if s, err := openStore(cmd); err == nil {
		fmt.Fprintf(out, "OS release %s\n", s.CurrentOSRelease())
	}
	return nil
}
