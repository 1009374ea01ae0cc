package main

import (
	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/dumper"
	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/parser"
)

func newASTCmd(a *app) *cobra.Command {
	var (
		positions bool
		indent    int
	)

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: i18n.T(i18n.CliASTDesc),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &dumper.Options{
				IndentSize:    a.cfg.Dump.Indent,
				ShowPositions: a.cfg.Dump.Positions,
			}
			if cmd.Flags().Changed("positions") {
				opts.ShowPositions = positions
			}
			if cmd.Flags().Changed("indent") {
				opts.IndentSize = indent
			}
			return a.runAST(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVarP(&positions, "positions", "p", false, i18n.T(i18n.CliOptPositions))
	cmd.Flags().IntVar(&indent, "indent", dumper.DefaultOptions().IndentSize, i18n.T(i18n.CliOptIndent))

	return cmd
}

func (a *app) runAST(cmd *cobra.Command, path string, opts *dumper.Options) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	stmts, err := parser.ParseSource(source, path)
	if err != nil {
		r := a.reporter(cmd)
		r.SetSource(path, source)
		r.ReportParseError(err, path)
		return errReported
	}
	a.log.Debug("%s: %d top-level statement(s)", path, len(stmts))

	return dumper.New(opts).Fdump(cmd.OutOrStdout(), stmts)
}
