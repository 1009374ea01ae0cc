package main

import (
	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/dumper"
	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/repl"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: i18n.T(i18n.CliReplDesc),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := repl.DefaultConfig()
			config.Dump = &dumper.Options{
				IndentSize:    a.cfg.Dump.Indent,
				ShowPositions: a.cfg.Dump.Positions,
			}
			config.Colors = errors.ColorsEnabled()

			a.log.Debug("starting repl")
			return repl.New(cmd.InOrStdin(), cmd.OutOrStdout(), config).Run()
		},
	}
}
