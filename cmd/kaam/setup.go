package main

import (
	"fmt"

	"github.com/mark3labs/kaam/internal/config"
	"github.com/mark3labs/kaam/internal/theme"
	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	var flags struct {
		project bool
		force   bool
	}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create a kaam configuration file",
		Long: `Create a kaam configuration file from the current settings.

By default, creates a global config at ~/.config/kaam/kaam.yml.
Use --project to create kaam.yml in the current directory, which gives
that directory its own task file settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath := config.GlobalPath()
			if flags.project {
				targetPath = config.ProjectPath()
			}

			if !flags.force && config.Exists(targetPath) {
				return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if flags.project {
				err = config.WriteProject(cfg)
			} else {
				err = config.WriteGlobal(cfg)
			}
			if err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			notice := theme.Current().S().Notice
			_, _ = fmt.Fprintf(stdout(cmd), "Config written to: %s\n%s\n",
				targetPath, notice.Render("Tasks are stored in "+cfg.Path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.project, "project", "p", false, "Create config in current directory instead of global location")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing config file")
	return cmd
}
