package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/mark3labs/kaam/internal/config"
	"github.com/mark3labs/kaam/internal/logger"
	"github.com/mark3labs/kaam/internal/store"
	"github.com/mark3labs/kaam/internal/theme"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

const usageText = `Usage: kaam [COMMAND] [ARGUMENTS]
kaam keeps your tasks in one plain text file.
Example: kaam list
Commands:
    - add [TASK/s]
        adds new task/s
        Example: kaam add "academic comeback"
    - edit [INDEX] [EDITED TASK]
        edits an existing task
        Example: kaam edit 1 banana
    - list
        lists all tasks
        Example: kaam list
    - done [INDEX/es]
        toggles tasks between done and not done
        Example: kaam done 2 3 (marks second and third tasks as completed)
    - rm [INDEX/es]
        removes tasks
        Example: kaam rm 4
    - reset
        deletes all tasks (backed up first unless KAAM_NO_BACKUP is set)
    - restore
        restores the most recent backup after reset
    - sort
        moves completed tasks below uncompleted ones
        Example: kaam sort
    - raw [kaam/done]
        prints only pending (kaam) or done tasks as plain text, for scripting
        Example: kaam raw done`

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kaam",
		Short:         "Personal task list kept in a plain text file",
		Long:          theme.Current().S().Help.Render(usageText),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No command: nothing to do. Anything unrecognized gets the help text.
			if len(args) == 0 {
				return nil
			}
			logger.Debug("Unknown command %q", strings.Join(args, " "))
			return cmd.Help()
		},
	}

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newDoneCmd(),
		newEditCmd(),
		newSortCmd(),
		newRawCmd(),
		newResetCmd(),
		newRestoreCmd(),
		newSetupCmd(),
		newMCPCmd(),
	)
	return root
}

// loadConfig loads configuration and points the logger at the configured
// destination.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		logger.Warn("Ignoring logging config: %v", err)
	}
	return cfg, nil
}

// openStore loads the task file. Failure here is fatal for every task command.
func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the kaam file: %w", err)
	}
	return s, nil
}

// stdout returns the command's output wrapped so styling is dropped when
// it is not a terminal.
func stdout(cmd *cobra.Command) io.Writer {
	return colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
}
