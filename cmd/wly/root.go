package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangzhangming/wly/internal/config"
	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/logger"
)

// errReported 诊断已经输出，只需以非零状态退出
var errReported = stderrors.New("diagnostics reported")

// app 命令共享的状态
type app struct {
	// 全局参数
	lang       string
	noColor    bool
	verbose    bool
	configPath string

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: logger.Nop()}

	root := &cobra.Command{
		Use:           "wly",
		Short:         i18n.T(i18n.CliShortDesc),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.lang, "lang", "", i18n.T(i18n.CliOptLang))
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, i18n.T(i18n.CliOptNoColor))
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, i18n.T(i18n.CliOptVerbose))
	root.PersistentFlags().StringVar(&a.configPath, "config", "", i18n.T(i18n.CliOptConfig))

	root.AddCommand(
		newTokensCmd(a),
		newASTCmd(a),
		newCheckCmd(a),
		newFmtCmd(a),
		newInitCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)

	return root
}

// execute 运行命令，未被诊断覆盖的错误在这里统一输出
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil && !stderrors.Is(err, errReported) {
		fmt.Fprintln(root.ErrOrStderr(), errors.Colorize("error", errors.ColorBoldRed)+": "+err.Error())
	}
	return err
}

// setup 加载配置、设置语言、颜色和日志
func (a *app) setup(cmd *cobra.Command, args []string) error {
	log, err := logger.New(logger.Options{Verbose: a.verbose, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	a.log = log

	cfg, path, err := a.loadConfig(args)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if path != "" {
		a.log.Debug("using config %s", path)
	}

	switch {
	case a.lang != "":
		if !i18n.SetLanguageFromString(a.lang) {
			return fmt.Errorf("--lang: unsupported language %q", a.lang)
		}
	case cfg.Diagnostics.Lang != "":
		i18n.SetLanguageFromString(cfg.Diagnostics.Lang)
	}

	switch {
	case a.noColor:
		errors.SetColorsEnabled(false)
	case cfg.Diagnostics.Color != nil:
		errors.SetColorsEnabled(*cfg.Diagnostics.Color)
	}

	return nil
}

// loadConfig 优先使用 --config，否则从第一个输入文件（或当前目录）向上查找 wly.toml
func (a *app) loadConfig(args []string) (*config.Config, string, error) {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return nil, a.configPath, fmt.Errorf("%s: %w", a.configPath, err)
		}
		return cfg, a.configPath, nil
	}

	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	return config.LoadFor(start)
}

// reporter 创建写到命令错误输出的诊断报告器
func (a *app) reporter(cmd *cobra.Command) *errors.Reporter {
	r := errors.NewReporter(cmd.ErrOrStderr())
	f := errors.NewFormatter()
	f.Colors = errors.ColorsEnabled()
	r.SetFormatter(f)
	return r
}

// readSource 读取源文件
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf(i18n.T(i18n.CliErrReadFile), err)
	}
	return string(data), nil
}
