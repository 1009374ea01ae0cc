package errors

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/lexer"
	"github.com/tangzhangming/wly/internal/parser"
	"github.com/tangzhangming/wly/internal/token"
)

// ============================================================================
// 从词法/语法错误转换
// ============================================================================

// FromParseError 将语法分析器返回的错误转换为 CompileError
func FromParseError(err *parser.Error) *CompileError {
	code := codeFor(err)

	ce := &CompileError{
		Code:      code,
		Level:     LevelError,
		Message:   err.Message,
		File:      err.Pos.Filename,
		Line:      err.Pos.Line,
		Column:    err.Pos.Column,
		EndColumn: err.Pos.Column + width(err.Found),
	}

	if hint := Hint(code); hint != "" {
		ce.Hints = append(ce.Hints, hint)
	}
	switch err.Found.Type {
	case token.LT, token.LE, token.GT, token.GE:
		ce.Hints = append(ce.Hints, i18n.T(i18n.HintComparison))
	}

	return ce
}

// FromError 将任意错误转换为 CompileError
//
// *parser.Error 按错误类别映射错误码，其他错误归为 E0001。
func FromError(err error, file string) *CompileError {
	var perr *parser.Error
	if stderrors.As(err, &perr) {
		ce := FromParseError(perr)
		if ce.File == "" {
			ce.File = file
		}
		return ce
	}

	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce
	}

	return &CompileError{
		Code:    E0001,
		Level:   LevelError,
		Message: err.Error(),
		File:    file,
	}
}

// FromLexError 将词法分析器收集的错误转换为 CompileError
func FromLexError(err lexer.Error) *CompileError {
	code := lexicalCode(err.Kind)
	ce := &CompileError{
		Code:      code,
		Level:     LevelError,
		Message:   err.Message,
		File:      err.Pos.Filename,
		Line:      err.Pos.Line,
		Column:    err.Pos.Column,
		EndColumn: err.Pos.Column + 1,
	}
	if hint := Hint(code); hint != "" {
		ce.Hints = append(ce.Hints, hint)
	}
	return ce
}

func lexicalCode(kind lexer.ErrorKind) string {
	switch kind {
	case lexer.UnexpectedChar:
		return E0002
	case lexer.InvalidEscape:
		return E0003
	case lexer.InvalidCharLiteral:
		return E0004
	default:
		return E0001
	}
}

func codeFor(err *parser.Error) string {
	if err.Kind == parser.LexicalError {
		return lexicalCode(err.LexicalKind)
	}

	switch {
	case err.Found.Type == token.EOF:
		return E0005
	case err.Message == i18n.T(i18n.ErrExprTooDeep):
		return E0001
	case strings.HasPrefix(err.Expected, "'"):
		// 期望某个具体的 token
		return E0006
	default:
		return E0007
	}
}

// width 返回 token 在首行上占据的字符数，至少为 1
func width(tok token.Token) int {
	lit := tok.Literal
	if i := strings.IndexByte(lit, '\n'); i >= 0 {
		lit = lit[:i]
	}
	if n := utf8.RuneCountInString(lit); n > 0 {
		return n
	}
	return 1
}
