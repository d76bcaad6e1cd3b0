package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forcegrade",
		Short: "forcegrade - grade free-body diagrams against force tasks",
		Long: `forcegrade grades freehand force drawings.

It matches the drawn arrows to the forces a task expects, checks direction,
point of application, length ratios and equilibrium, and reports a score
with feedback a student can act on.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newTasksCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
