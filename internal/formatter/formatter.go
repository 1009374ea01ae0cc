// Package formatter 将 wly 源代码重新输出为规范格式
package formatter

import (
	"github.com/tangzhangming/wly/internal/ast"
	"github.com/tangzhangming/wly/internal/parser"
)

// Format 格式化源代码
//
// 源代码有词法或语法错误时返回 *parser.Error，不输出任何内容。
// 对格式化结果再次格式化得到相同的文本。
func Format(source, filename string, options *Options) (string, error) {
	if options == nil {
		options = DefaultOptions()
	}

	stmts, err := parser.New(source, filename).Parse()
	if err != nil {
		return "", err
	}

	return NewPrinter(options).Print(stmts), nil
}

// FormatWithDefaultOptions 使用默认选项格式化
func FormatWithDefaultOptions(source, filename string) (string, error) {
	return Format(source, filename, DefaultOptions())
}

// FormatNode 以默认选项输出单个语句
func FormatNode(stmt ast.Statement) string {
	return NewPrinter(DefaultOptions()).Print([]ast.Statement{stmt})
}
