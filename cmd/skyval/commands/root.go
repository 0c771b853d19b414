package commands

import (
	"os"

	"github.com/mrled/skyval/internal/logger"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	LogLevel  string
	LogFormat string
}

var rootCmd = &cobra.Command{
	Use:   "skyval",
	Short: "Skyval is a tool for validating Skyscrapers puzzle boards",
	Long: `A command-line tool for validating 7x7 Skyscrapers boards and managing stored verdicts.

A board is seven lines of seven characters. The outer ring holds visibility
hints (1-5, or * for no hint); the 5x5 interior holds building heights 1-5,
with ? marking cells that are not yet filled in.

Exit status is 0 when every checked board is valid, 1 when at least one is
invalid, and 2 when a board could not be loaded or stored.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logger.DefaultConfig()
		if rootFlags.LogLevel != "" {
			cfg.Level = rootFlags.LogLevel
		}
		if rootFlags.LogFormat != "" {
			cfg.Format = rootFlags.LogFormat
		}
		// stdout is for verdicts
		cfg.Output = os.Stderr
		log := logger.WithExecutable(logger.NewLogger(cfg), "skyval")
		logger.SetDefault(log)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL, else info)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.LogFormat, "log-format", "", "Log format: json or text (default from LOG_FORMAT, else json)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "boards", Title: "Board Commands:"},
		&cobra.Group{ID: "records", Title: "Verdict Record Commands:"},
	)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(boardidCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(revalidateCmd)
}
