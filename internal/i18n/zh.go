package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrUnexpectedChar:     "非法字符 '%c'",
	ErrInvalidEscape:      "无效的转义序列 '\\%c'",
	ErrEscapeAtEOF:        "无效的转义序列: 文件末尾的 '\\'",
	ErrInvalidCharLiteral: "无效的字符字面量 '%s'",
	ErrInvalidInteger:     "无效的整数: %s",
	ErrInvalidFloat:       "无效的浮点数: %s",

	// ========== 语法分析器 ==========
	ErrExpectedToken:      "需要 %s，实际为 %s",
	ErrExpectedType:       "需要类型，实际为 %s",
	ErrExpectedPrimary:    "需要基本表达式，实际为 %s",
	ErrExpectedIdentifier: "需要标识符，实际为 %s",
	ErrUnexpectedEOF:      "意外的输入结束，需要 %s",
	ErrExprTooDeep:        "表达式嵌套过深",
	ErrLexicalErrorPrefix: "词法错误",
	ErrSyntaxErrorPrefix:  "语法错误",

	// ========== 修复建议 ==========
	HintEscapes:       "支持的转义序列为 \\n \\r \\t \\0 \\' \\\" \\\\",
	HintCharLiteral:   "字符字面量必须恰好包含一个字符，文本请使用字符串",
	HintUnexpectedEOF: "文件在声明或表达式中间结束",
	HintComparison:    "比较运算符只用作 array<T> 类型的分隔符",

	// ========== 诊断汇总 ==========
	SummaryErrorCount: "发现 %d 个错误",

	// ========== 命令行 ==========
	CliShortDesc:    "wly 语言前端：词法序列、语法树输出与检查",
	CliTokensDesc:   "输出源文件的 Token 序列",
	CliASTDesc:      "输出源文件的语法树",
	CliCheckDesc:    "检查一个或多个源文件的词法和语法错误",
	CliFmtDesc:      "按规范格式重新排版源文件",
	CliVersionDesc:  "显示版本信息",
	CliOptLang:      "诊断语言 (en|zh)",
	CliOptNoColor:   "禁用彩色诊断输出",
	CliOptVerbose:   "启用调试日志",
	CliOptConfig:    "wly.toml 路径（默认从输入文件向上查找）",
	CliOptFormat:    "输出格式 (text|json|yaml)",
	CliOptPositions: "为每个节点附加 行:列",
	CliOptWrite:     "将结果写回源文件而不是标准输出",
	CliOptIndent:    "缩进空格数",
	CliErrReadFile:  "无法读取文件: %v",
	CliErrFormat:    "未知的输出格式: %s",
	CliSyntaxOK:     "%s: 语法正确",
	CliCheckFailed:  "%d/%d 个文件检查失败",
	CliFormatted:    "已格式化 %s",
	CliVersionTitle: "wly %s",
	CliInitDesc:     "在当前目录创建 wly.toml",
	CliOptName:      "项目名（默认为目录名）",
	CliOptTabs:      "使用 Tab 而不是空格缩进",
	CliInitCreated:  "已创建 %s",
	CliInitExists:   "%s 已存在",
	CliLSDesc:       "wly 语言服务器（通过标准输入输出提供 LSP）",
	CliOptLog:       "日志文件路径（默认不记录日志）",
	CliReplDesc:     "交互式语法浏览器",
}
