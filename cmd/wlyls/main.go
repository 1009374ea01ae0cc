package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/logger"
	"github.com/tangzhangming/wly/internal/lsp"
)

// Version 语言服务器版本
const Version = "0.1.0"

// stdio 将标准输入输出组合为 LSP 连接
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

func main() {
	var (
		logFile     string
		verbose     bool
		showVersion bool
		lang        string
	)

	cmd := &cobra.Command{
		Use:           "wlyls",
		Short:         i18n.T(i18n.CliLSDesc),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", lsp.ServerName, Version)
				return nil
			}
			if lang != "" && !i18n.SetLanguageFromString(lang) {
				return fmt.Errorf("--lang: unsupported language %q", lang)
			}

			// stdout 是协议通道，日志只能写到 stderr 或文件
			log, err := logger.New(logger.Options{Verbose: verbose, File: logFile, Output: os.Stderr})
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return lsp.NewServer(log.Named("lsp"), Version).Run(ctx, stdio{})
		},
	}

	cmd.Flags().StringVar(&logFile, "log", "", i18n.T(i18n.CliOptLog))
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, i18n.T(i18n.CliOptVerbose))
	cmd.Flags().BoolVar(&showVersion, "version", false, i18n.T(i18n.CliVersionDesc))
	cmd.Flags().StringVar(&lang, "lang", "", i18n.T(i18n.CliOptLang))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wlyls: %v\n", err)
		os.Exit(1)
	}
}
