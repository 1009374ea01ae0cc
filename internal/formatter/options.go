package formatter

import "strings"

// Options 格式化选项
type Options struct {
	// 缩进设置
	IndentStyle string // "tabs" 或 "spaces"
	IndentSize  int    // 空格数（当使用 spaces 时）

	// 代码风格
	SpaceAroundOps       bool // 二元运算符周围是否有空格
	BlankLineAroundDecls bool // 函数、类声明前后空一行

	// 其他
	EnsureNewlineAtEOF bool // 确保文件末尾有换行符
}

// DefaultOptions 返回默认格式化选项（4空格缩进）
func DefaultOptions() *Options {
	return &Options{
		IndentStyle:          "spaces",
		IndentSize:           4,
		SpaceAroundOps:       true,
		BlankLineAroundDecls: true,
		EnsureNewlineAtEOF:   true,
	}
}

// IndentString 返回一级缩进对应的字符串
func (o *Options) IndentString() string {
	if o.IndentStyle == "tabs" {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentSize)
}
