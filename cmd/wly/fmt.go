package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/formatter"
	"github.com/tangzhangming/wly/internal/i18n"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		write  bool
		indent int
		tabs   bool
	)

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: i18n.T(i18n.CliFmtDesc),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := formatter.DefaultOptions()
			if a.cfg.Format.Indent > 0 {
				opts.IndentSize = a.cfg.Format.Indent
			}
			if a.cfg.Format.Tabs {
				opts.IndentStyle = "tabs"
			}
			if cmd.Flags().Changed("indent") {
				opts.IndentSize = indent
			}
			if cmd.Flags().Changed("tabs") {
				opts.IndentStyle = "spaces"
				if tabs {
					opts.IndentStyle = "tabs"
				}
			}
			return a.runFmt(cmd, args[0], opts, write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, i18n.T(i18n.CliOptWrite))
	cmd.Flags().IntVar(&indent, "indent", formatter.DefaultOptions().IndentSize, i18n.T(i18n.CliOptIndent))
	cmd.Flags().BoolVar(&tabs, "tabs", false, i18n.T(i18n.CliOptTabs))

	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, path string, opts *formatter.Options, write bool) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	formatted, err := formatter.Format(source, path, opts)
	if err != nil {
		r := a.reporter(cmd)
		r.SetSource(path, source)
		r.ReportParseError(err, path)
		return errReported
	}

	if !write {
		_, err = fmt.Fprint(cmd.OutOrStdout(), formatted)
		return err
	}

	if formatted == source {
		a.log.Debug("%s: already formatted", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T(i18n.CliFormatted, path))
	return nil
}
