package i18n

// 消息 ID
const (
	// ========== 词法分析器 ==========
	ErrUnexpectedChar     = "lexer.unexpected_char"
	ErrInvalidEscape      = "lexer.invalid_escape"
	ErrEscapeAtEOF        = "lexer.escape_at_eof"
	ErrInvalidCharLiteral = "lexer.invalid_char_literal"
	ErrInvalidInteger     = "lexer.invalid_integer"
	ErrInvalidFloat       = "lexer.invalid_float"

	// ========== 语法分析器 ==========
	ErrExpectedToken       = "parser.expected_token"
	ErrExpectedType        = "parser.expected_type"
	ErrExpectedPrimary     = "parser.expected_primary"
	ErrExpectedIdentifier  = "parser.expected_identifier"
	ErrUnexpectedEOF       = "parser.unexpected_eof"
	ErrExprTooDeep         = "parser.expr_too_deep"
	ErrLexicalErrorPrefix  = "parser.lexical_error"
	ErrSyntaxErrorPrefix   = "parser.syntax_error"

	// ========== 修复建议 ==========
	HintEscapes       = "hint.escapes"
	HintCharLiteral   = "hint.char_literal"
	HintUnexpectedEOF = "hint.unexpected_eof"
	HintComparison    = "hint.comparison"

	// ========== 诊断汇总 ==========
	SummaryErrorCount = "summary.error_count"

	// ========== 命令行 ==========
	CliShortDesc    = "cli.short"
	CliTokensDesc   = "cli.tokens"
	CliASTDesc      = "cli.ast"
	CliCheckDesc    = "cli.check"
	CliFmtDesc      = "cli.fmt"
	CliVersionDesc  = "cli.version"
	CliOptLang      = "cli.opt.lang"
	CliOptNoColor   = "cli.opt.no_color"
	CliOptVerbose   = "cli.opt.verbose"
	CliOptConfig    = "cli.opt.config"
	CliOptFormat    = "cli.opt.format"
	CliOptPositions = "cli.opt.positions"
	CliOptWrite     = "cli.opt.write"
	CliOptIndent    = "cli.opt.indent"
	CliErrReadFile  = "cli.err.read_file"
	CliErrFormat    = "cli.err.format"
	CliSyntaxOK     = "cli.syntax_ok"
	CliCheckFailed  = "cli.check_failed"
	CliFormatted    = "cli.formatted"
	CliVersionTitle = "cli.version_title"
	CliInitDesc     = "cli.init"
	CliOptName      = "cli.opt.name"
	CliOptTabs      = "cli.opt.tabs"
	CliInitCreated  = "cli.init_created"
	CliInitExists   = "cli.init_exists"
	CliLSDesc       = "cli.ls"
	CliOptLog       = "cli.opt.log"
	CliReplDesc     = "cli.repl"
)
