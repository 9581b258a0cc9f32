package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	rootDir string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "implint [paths...]",
	Short:            "implint - import specifier linter for JS/TS projects",
	Long: `implint finds import specifiers that have a shorter, equivalent
spelling under the project's alias configuration (tsconfig paths or
.implint.yaml) and can rewrite them in place.`,
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'implint' is entered
			_ = cmd.Help()
			return
		}
		// Format: implint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".implint.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root the alias mapping is anchored at")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(watchCmd)
}
