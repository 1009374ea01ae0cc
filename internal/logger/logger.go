// Package logger 封装 zap，为命令行工具和语言服务器提供统一的日志输出
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDebug 开启调试日志的环境变量
const EnvDebug = "WLY_DEBUG"

// Options 日志选项
type Options struct {
	// Verbose 开启 Debug/Info 级别的输出
	Verbose bool

	// File 日志文件路径，为空时不写文件
	File string

	// Output 控制台输出，默认 os.Stderr
	Output io.Writer
}

// Logger 日志记录器
//
// Error 级别始终输出到控制台；Debug 和 Info 只在启用调试时输出。
type Logger struct {
	zl      *zap.Logger
	sugar   *zap.SugaredLogger
	file    *os.File
	enabled bool
}

// DebugFromEnv 检查环境变量是否要求开启调试日志
func DebugFromEnv() bool {
	switch os.Getenv(EnvDebug) {
	case "1", "true", "on":
		return true
	}
	return false
}

// New 创建日志记录器
func New(opts Options) (*Logger, error) {
	enabled := opts.Verbose || DebugFromEnv()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	consoleLevel := zapcore.ErrorLevel
	if enabled {
		consoleLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(out)), consoleLevel),
	}

	l := &Logger{enabled: enabled}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		l.file = f

		fileLevel := zapcore.InfoLevel
		if enabled {
			fileLevel = zapcore.DebugLevel
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(f),
			fileLevel,
		))
	}

	l.zl = zap.New(zapcore.NewTee(cores...))
	l.sugar = l.zl.Sugar()
	return l, nil
}

// Nop 返回不输出任何内容的日志记录器
func Nop() *Logger {
	zl := zap.NewNop()
	return &Logger{zl: zl, sugar: zl.Sugar()}
}

// Zap 返回底层的 zap.Logger
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Named 返回带名称前缀的子日志记录器，共享同一个日志文件
func (l *Logger) Named(name string) *Logger {
	zl := l.zl.Named(name)
	return &Logger{zl: zl, sugar: zl.Sugar(), enabled: l.enabled}
}

// Debug 记录调试信息
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info 记录一般信息
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Error 记录错误信息（始终输出）
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// IsEnabled 返回调试日志是否启用
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// Close 刷新缓冲并关闭日志文件
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
