package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/parser"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: i18n.T(i18n.CliCheckDesc),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args)
		},
	}
}

// runCheck 逐个检查文件，每个文件报告第一个错误，最后汇总失败数量
func (a *app) runCheck(cmd *cobra.Command, paths []string) error {
	r := a.reporter(cmd)
	var errs error

	for _, path := range paths {
		source, err := readSource(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			errs = multierr.Append(errs, err)
			continue
		}

		r.SetSource(path, source)
		if _, err := parser.ParseSource(source, path); err != nil {
			r.ReportParseError(err, path)
			errs = multierr.Append(errs, err)
			continue
		}

		a.log.Debug("%s: ok", path)
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T(i18n.CliSyntaxOK, path))
	}

	if errs == nil {
		return nil
	}

	failed := len(multierr.Errors(errs))
	a.log.Info("check: %d of %d file(s) failed", failed, len(paths))
	fmt.Fprintln(cmd.ErrOrStderr(), i18n.T(i18n.CliCheckFailed, failed, len(paths)))
	return errReported
}
