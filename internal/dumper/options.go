package dumper

// Options 语法树输出选项
type Options struct {
	IndentSize    int  // 每层缩进的空格数
	ShowPositions bool // 在节点类别行后附加 @行:列
}

// DefaultOptions 返回默认选项（两空格缩进，不显示位置）
func DefaultOptions() *Options {
	return &Options{
		IndentSize: 2,
	}
}
