package cmd

import (
	"os"

	"github.com/djcass44/go-utils/logging"
	"github.com/mpkg-project/mpkg/pkg/status"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var command = &cobra.Command{
	Use:          "mpkg",
	Short:        "manage installed packages",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetInt(flagLogLevel)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(logLevel * -1))

		_, ctx := logging.NewZap(cmd.Context(), zc)
		cmd.SetContext(ctx)
	},
}

const (
	flagLogLevel = "v"
	flagConfig   = "config"
)

func init() {
	command.PersistentFlags().Int(flagLogLevel, 0, "log level. Higher is more")
	command.PersistentFlags().String(flagConfig, "", "path to a configuration file")

	_ = command.MarkPersistentFlagFilename(flagConfig, ".yaml", ".yml", ".json")

	command.AddCommand(installCmd, deleteCmd, deleteAllCmd, autoremoveCmd, downloadCmd)
	command.AddCommand(searchCmd, listCmd, locksCmd, infoCmd, statsCmd, cpeCmd, whichCmd)
	command.AddCommand(lockCmd, unlockCmd, verifyCmd, cleanCmd, indexCmd, configCmd, versionCmd)
}

func Execute(version string) {
	command.Version = version
	if err := command.Execute(); err != nil {
		os.Exit(status.ExitCode(err))
	}
}
