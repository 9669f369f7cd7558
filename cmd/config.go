package cmd

import (
	"fmt"

	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "read and write local settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "print a setting, or list all keys",
	Args:  cobra.MaximumNArgs(1),
	RunE:  configGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  configSet,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
}

func configGet(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		keys, err := s.SettingKeys(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(out, k)
		}
		return nil
	}

	value, ok, err := s.Setting(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return status.Errorf(status.ErrNotFound, "setting %s is not set", args[0])
	}
	fmt.Fprintln(out, value)
	return nil
}

func configSet(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	return s.SetSetting(cmd.Context(), args[0], args[1])
}
