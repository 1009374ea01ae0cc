package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ============================================================================
// 错误报告器
// ============================================================================

// Reporter 错误报告器
//
// 按报告顺序将格式化后的诊断写入输出，并缓存源代码用于显示上下文。
type Reporter struct {
	out         io.Writer
	formatter   *Formatter
	sourceCache map[string][]string // 源代码缓存
	errors      []*CompileError
}

// NewReporter 创建错误报告器，诊断写入 out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:         out,
		formatter:   NewFormatter(),
		sourceCache: make(map[string][]string),
	}
}

// SetFormatter 设置格式化器
func (r *Reporter) SetFormatter(f *Formatter) {
	r.formatter = f
}

// Formatter 返回当前格式化器
func (r *Reporter) Formatter() *Formatter {
	return r.formatter
}

// LoadSource 加载源文件
func (r *Reporter) LoadSource(filename string) error {
	if _, ok := r.sourceCache[filename]; ok {
		return nil // 已加载
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("load source %s: %w", filename, err)
	}
	r.SetSource(filename, string(data))
	return nil
}

// SetSource 设置源代码（用于测试或内存中的源代码）
func (r *Reporter) SetSource(filename string, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	r.sourceCache[filename] = strings.Split(content, "\n")
}

// GetSourceLines 获取源代码行数组
func (r *Reporter) GetSourceLines(filename string) []string {
	return r.sourceCache[filename]
}

// ReportError 报告编译错误
func (r *Reporter) ReportError(err *CompileError) {
	if _, ok := r.sourceCache[err.File]; !ok {
		// 源文件无法读取时只输出错误头
		_ = r.LoadSource(err.File)
	}

	r.errors = append(r.errors, err)
	fmt.Fprint(r.out, r.formatter.FormatCompileError(err, r.GetSourceLines(err.File)))
}

// ReportParseError 转换并报告 Parse 返回的错误
func (r *Reporter) ReportParseError(err error, file string) *CompileError {
	ce := FromError(err, file)
	r.ReportError(ce)
	return ce
}

// HasErrors 检查是否有错误
func (r *Reporter) HasErrors() bool {
	return len(r.errors) > 0
}

// ErrorCount 返回错误数量
func (r *Reporter) ErrorCount() int {
	return len(r.errors)
}

// Errors 返回已报告的错误
func (r *Reporter) Errors() []*CompileError {
	return r.errors
}

// Clear 清空已报告的错误
func (r *Reporter) Clear() {
	r.errors = nil
}
