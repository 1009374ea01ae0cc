package errors

import (
	"os"
	"regexp"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBoldRed
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:     "\033[0m",
	ColorRed:       "\033[31m",
	ColorGreen:     "\033[32m",
	ColorYellow:    "\033[33m",
	ColorBlue:      "\033[34m",
	ColorCyan:      "\033[36m",
	ColorBoldRed:   "\033[1;31m",
	ColorBoldWhite: "\033[1;37m",
}

// colorsEnabled 是否启用颜色
var colorsEnabled = detectColorSupport()

// detectColorSupport 检测标准错误是否为支持颜色的终端
func detectColorSupport() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if fileInfo, err := os.Stderr.Stat(); err == nil {
		return fileInfo.Mode()&os.ModeCharDevice != 0
	}
	return false
}

// ColorsEnabled 返回是否启用颜色
func ColorsEnabled() bool {
	return colorsEnabled
}

// SetColorsEnabled 设置是否启用颜色
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// Colorize 着色字符串（颜色禁用时原样返回）
func Colorize(s string, color Color) string {
	if !colorsEnabled {
		return s
	}
	return paint(s, color)
}

func paint(s string, color Color) string {
	code, ok := ansiCodes[color]
	if !ok {
		return s
	}
	return code + s + ansiCodes[ColorReset]
}

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Strip 去除字符串中的 ANSI 颜色代码
func Strip(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
