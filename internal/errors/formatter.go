package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tangzhangming/wly/internal/i18n"
)

// ============================================================================
// 错误标签
// ============================================================================

// Label 代码标签（用于标注错误位置）
type Label struct {
	Line    int    // 行号（1-based）
	Column  int    // 列号（1-based，按字符计）
	Length  int    // 标注长度
	Message string // 标签消息
	Primary bool   // 是否为主要标签
}

// ============================================================================
// 编译错误
// ============================================================================

// CompileError 词法或语法诊断
type CompileError struct {
	Code      string   // 错误码 (E0006)
	Level     Level    // 错误级别
	Message   string   // 主消息
	File      string   // 文件路径
	Line      int      // 行号
	Column    int      // 列号
	EndColumn int      // 结束列（不含）
	Labels    []Label  // 代码标签
	Hints     []string // 修复建议
	Notes     []string // 附加说明
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
//
// 输出格式：
//
//	error[E0006]: expected ';', got end of input
//	 --> main.wly:1:15
//	  |
//	1 | var x: int = 1
//	  |               ^
//	 = help: ...
type Formatter struct {
	Colors     bool // 是否使用颜色
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     ColorsEnabled(),
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

// FormatCompileError 格式化编译错误
func (f *Formatter) FormatCompileError(err *CompileError, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: error[E0006]: ...
	levelStr := f.colorize(err.Level.String(), f.levelColor(err.Level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(err.Level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, f.colorize(err.Message, ColorBoldWhite)))

	// 位置: --> file.wly:5:12
	arrow := f.colorize("-->", ColorCyan)
	location := f.colorize(fmt.Sprintf("%s:%d:%d", err.File, err.Line, err.Column), ColorCyan)
	sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, location))

	if f.ShowSource && err.Line > 0 && err.Line <= len(sourceLines) {
		sb.WriteString(f.formatSourceContext(sourceLines, err.Line, err.Column, err.EndColumn, err.Labels))
	}

	if f.ShowHints {
		for _, hint := range err.Hints {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = help:", ColorCyan), hint))
		}
	}

	for _, note := range err.Notes {
		sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = note:", ColorCyan), note))
	}

	return sb.String()
}

// formatSourceContext 输出出错行及其下方的标注
func (f *Formatter) formatSourceContext(lines []string, errorLine, startCol, endCol int, labels []Label) string {
	var sb strings.Builder

	maxLine := errorLine
	for _, label := range labels {
		if label.Line > maxLine && label.Line <= len(lines) {
			maxLine = label.Line
		}
	}
	lineNumWidth := len(fmt.Sprintf("%d", maxLine))
	gutter := strings.Repeat(" ", lineNumWidth)

	sb.WriteString(f.colorize(gutter+" |", ColorBlue) + "\n")

	line := lines[errorLine-1]
	sb.WriteString(f.sourceLine(line, errorLine, lineNumWidth))

	length := endCol - startCol
	if length < 1 {
		length = 1
	}
	sb.WriteString(f.colorize(gutter+" |", ColorBlue) + " " +
		strings.Repeat(" ", f.calculateActualColumn(line, startCol)) +
		f.colorize(strings.Repeat("^", length), ColorRed) + "\n")

	// 其他行上的标签
	for _, label := range labels {
		if label.Line == errorLine || label.Line <= 0 || label.Line > len(lines) {
			continue
		}
		labelLine := lines[label.Line-1]
		sb.WriteString(f.sourceLine(labelLine, label.Line, lineNumWidth))
		if label.Message != "" {
			width := label.Length
			if width < 1 {
				width = 1
			}
			sb.WriteString(f.colorize(gutter+" |", ColorBlue) + " " +
				strings.Repeat(" ", f.calculateActualColumn(labelLine, label.Column)) +
				f.colorize(strings.Repeat("-", width)+" "+label.Message, f.labelColor(label.Primary)) + "\n")
		}
	}

	return sb.String()
}

func (f *Formatter) sourceLine(line string, lineNum, width int) string {
	num := f.colorize(fmt.Sprintf("%*d |", width, lineNum), ColorBlue)
	return num + " " + f.expandTabs(line) + "\n"
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算第 col 个字符之前的显示宽度（考虑 Tab）
func (f *Formatter) calculateActualColumn(line string, col int) int {
	actual := 0
	for i := 1; i < col && line != ""; i++ {
		r, size := utf8.DecodeRuneInString(line)
		line = line[size:]
		if r == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
	}
	return actual
}

// levelColor 获取错误级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorYellow
	case LevelNote:
		return ColorCyan
	default:
		return ColorGreen
	}
}

// labelColor 获取标签颜色
func (f *Formatter) labelColor(primary bool) Color {
	if primary {
		return ColorRed
	}
	return ColorYellow
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return paint(s, color)
}

// FormatCompileErrors 格式化多个编译错误，并在末尾输出错误计数
func (f *Formatter) FormatCompileErrors(errs []*CompileError, sourceCache map[string][]string) string {
	var sb strings.Builder

	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.FormatCompileError(err, sourceCache[err.File]))
	}

	if len(errs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.colorize(i18n.T(i18n.SummaryErrorCount, len(errs)), ColorRed) + "\n")
	}

	return sb.String()
}
