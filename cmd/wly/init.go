package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/config"
	"github.com/tangzhangming/wly/internal/i18n"
)

func newInitCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: i18n.T(i18n.CliInitDesc),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return a.runInit(cmd, dir, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", i18n.T(i18n.CliOptName))

	return cmd
}

// runInit 在 dir 中生成默认的 wly.toml
func (a *app) runInit(cmd *cobra.Command, dir, name string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf(i18n.T(i18n.CliInitExists), path)
	}

	cfg := config.GenerateDefault(dir)
	if name != "" {
		cfg.Project.Name = name
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	a.log.Debug("project %q initialized in %s", cfg.Project.Name, dir)
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T(i18n.CliInitCreated, path))
	return nil
}
