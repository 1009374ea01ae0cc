package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/i18n"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T(i18n.CliVersionDesc),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), i18n.T(i18n.CliVersionTitle, Version)+" (%s %s/%s)\n",
				runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
