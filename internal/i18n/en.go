package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnexpectedChar:     "invalid character '%c'",
	ErrInvalidEscape:      "invalid escape sequence '\\%c'",
	ErrEscapeAtEOF:        "invalid escape sequence: '\\' at end of file",
	ErrInvalidCharLiteral: "invalid character literal '%s'",
	ErrInvalidInteger:     "invalid integer: %s",
	ErrInvalidFloat:       "invalid float number: %s",

	// ========== Parser ==========
	ErrExpectedToken:      "expected %s, got %s",
	ErrExpectedType:       "expected type, got %s",
	ErrExpectedPrimary:    "expected primary expression, got %s",
	ErrExpectedIdentifier: "expected identifier, got %s",
	ErrUnexpectedEOF:      "unexpected end of input, expected %s",
	ErrExprTooDeep:        "expression too deeply nested",
	ErrLexicalErrorPrefix: "lexical error",
	ErrSyntaxErrorPrefix:  "syntax error",

	// ========== Hints ==========
	HintEscapes:       "supported escape sequences are \\n \\r \\t \\0 \\' \\\" \\\\",
	HintCharLiteral:   "a character literal must contain exactly one character; use a string for text",
	HintUnexpectedEOF: "the file ends in the middle of a declaration or expression",
	HintComparison:    "comparison operators are only used as delimiters in array<T> types",

	// ========== Summary ==========
	SummaryErrorCount: "found %d error(s)",

	// ========== CLI ==========
	CliShortDesc:    "wly language front end: tokens, syntax tree dumps and checks",
	CliTokensDesc:   "Print the token stream of a source file",
	CliASTDesc:      "Print the syntax tree of a source file",
	CliCheckDesc:    "Check one or more source files for lexical and syntax errors",
	CliFmtDesc:      "Reformat a source file in canonical layout",
	CliVersionDesc:  "Show version information",
	CliOptLang:      "diagnostic language (en|zh)",
	CliOptNoColor:   "disable colored diagnostics",
	CliOptVerbose:   "enable debug logging",
	CliOptConfig:    "path to wly.toml (default: search upward from the input)",
	CliOptFormat:    "output format (text|json|yaml)",
	CliOptPositions: "append line:column to every node",
	CliOptWrite:     "write result to the source file instead of stdout",
	CliOptIndent:    "indent width in spaces",
	CliErrReadFile:  "cannot read file: %v",
	CliErrFormat:    "unknown output format: %s",
	CliSyntaxOK:     "%s: syntax OK",
	CliCheckFailed:  "%d of %d file(s) failed",
	CliFormatted:    "formatted %s",
	CliVersionTitle: "wly %s",
	CliInitDesc:     "Create a wly.toml in the current directory",
	CliOptName:      "project name (default: directory name)",
	CliOptTabs:      "indent with tabs instead of spaces",
	CliInitCreated:  "created %s",
	CliInitExists:   "%s already exists",
	CliLSDesc:       "wly language server (LSP over stdio)",
	CliOptLog:       "log file path (default: no log file)",
	CliReplDesc:     "interactive syntax explorer",
}
