package main

import (
	"fmt"

	"github.com/mark3labs/kaam/internal/logger"
	"github.com/mark3labs/kaam/internal/task"
	"github.com/mark3labs/kaam/internal/theme"
	"github.com/spf13/cobra"
)

// minArgs and exactArgs report usage errors in the same words for every
// command. All of them end the process with a non-zero status.
func minArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func exactArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.List(stdout(cmd), task.NewRenderer(theme.Current().S()))
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add TASK...",
		Short: "Add new tasks",
		Long: `Add one task per argument. Blank arguments are skipped.
Use -- before a task that starts with a dash.`,
		Example: `  kaam add "academic comeback"
  kaam add milk eggs`,
		Args: minArgs(1, "kaam add requires an argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			n, err := s.Add(args)
			if err != nil {
				return err
			}
			logger.Info("Added %d tasks", n)
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm INDEX...",
		Short:   "Remove tasks",
		Example: "  kaam rm 4",
		Args:    minArgs(1, "kaam rm requires an argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Remove(args)
		},
	}
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done INDEX...",
		Short:   "Toggle tasks between done and not done",
		Example: "  kaam done 2 3",
		Args:    minArgs(1, "kaam done requires an argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Done(args)
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "edit INDEX TASK",
		Short:   "Replace the text of a task",
		Long:    "Replace the text of a task, keeping its done state. Quote the new text if it has spaces.",
		Example: "  kaam edit 1 banana",
		Args:    exactArgs(2, "kaam edit takes exactly 2 arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Edit(args[0], args[1])
		},
	}
}

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Move completed tasks below uncompleted ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Sort()
		},
	}
}

func newRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "raw kaam|done",
		Short:   "Print pending (kaam) or done tasks as plain text",
		Example: "  kaam raw done",
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return fmt.Errorf("kaam raw requires an argument")
			case len(args) > 1:
				return fmt.Errorf("kaam raw takes only one argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := task.ParseFilter(args[0])
			if err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Raw(cmd.OutOrStdout(), filter)
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all tasks, backing them up first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return s.Reset()
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the most recent backup after reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Restore(); err != nil {
				return fmt.Errorf("couldn't restore the kaam file from backup: %w", err)
			}
			return nil
		},
	}
}
