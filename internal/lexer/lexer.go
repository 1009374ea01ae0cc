package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器负责将完整的源代码字符串转换为 Token 序列。
//
// 错误处理策略：
// 1. 非法字符、字符字面量长度错误：生成 ILLEGAL token，继续扫描
// 2. 非法转义序列（字符串和字符字面量相同）：生成 ILLEGAL token，立即停止扫描
// 3. 未闭合的字符串/字符字面量：不报错，用已收集的内容生成 token
//
// 与旧版不同，序列末尾不追加 EOF token，由语法分析器自行处理输入结束。
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source   string        // 源代码字符串
	filename string        // 源文件名（用于错误报告）
	tokens   []token.Token // 已扫描的 Token 列表

	start   int // 当前 Token 的起始位置（字节偏移）
	current int // 当前扫描位置（字节偏移）
	line    int // 当前行号（从1开始）
	column  int // 当前列号（从1开始，按字符计）

	startLine   int // 当前 Token 起始行号
	startColumn int // 当前 Token 起始列号

	halted bool    // 遇到不可恢复的错误后停止扫描
	errors []Error // 词法错误列表
}

// ErrorKind 词法错误类别
type ErrorKind int

const (
	UnexpectedChar     ErrorKind = iota // 非法字符
	InvalidEscape                       // 非法转义序列（致命）
	InvalidCharLiteral                  // 字符字面量长度不为 1
	InvalidNumber                       // 数字溢出
)

// Error 表示词法分析错误
type Error struct {
	Pos     token.Position // 错误位置
	Kind    ErrorKind      // 错误类别
	Message string         // 错误信息
	Fatal   bool           // 是否中止了扫描
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ============================================================================
// 构造函数
// ============================================================================

// New 创建一个新的词法分析器
//
// 参数:
//   - source: 源代码字符串
//   - filename: 源文件名（用于错误报告）
func New(source, filename string) *Lexer {
	// 经验值：平均每 5 个字符产生一个 token
	estimatedTokens := len(source) / 5
	if estimatedTokens < 16 {
		estimatedTokens = 16
	}

	return &Lexer{
		source:   source,
		filename: filename,
		tokens:   make([]token.Token, 0, estimatedTokens),
		line:     1,
		column:   1,
	}
}

// Tokenize 是 New(source, filename).ScanTokens() 的简写
func Tokenize(source, filename string) ([]token.Token, []Error) {
	l := New(source, filename)
	tokens := l.ScanTokens()
	return tokens, l.Errors()
}

// ============================================================================
// 公共方法
// ============================================================================

// ScanTokens 扫描所有 tokens
//
// 遇到不可恢复的错误时返回已扫描的 token 加上最后的 ILLEGAL token，
// 剩余的源代码被丢弃。
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() && !l.halted {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}
	return l.tokens
}

// Errors 返回所有词法错误
func (l *Lexer) Errors() []Error {
	return l.errors
}

// HasErrors 检查是否有错误
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

// Halted 报告扫描是否因不可恢复的错误而提前结束
func (l *Lexer) Halted() bool {
	return l.halted
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {
	// 空白（换行由 advance 处理行号）
	case ' ', '\t', '\r', '\n':

	// ----------------------------------------------------------
	// 单字符分隔符和运算符
	// ----------------------------------------------------------
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case ',':
		l.addToken(token.COMMA)
	case '.':
		l.addToken(token.DOT)
	case ':':
		l.addToken(token.COLON)
	case ';':
		l.addToken(token.SEMICOLON)
	case '+':
		l.addToken(token.PLUS)
	case '-':
		l.addToken(token.MINUS)
	case '*':
		l.addToken(token.STAR)
	case '/':
		l.addToken(token.SLASH)
	case '%':
		l.addToken(token.PERCENT)
	case '^':
		l.addToken(token.CARET)
	case '?':
		l.addToken(token.QUESTION)
	case '@':
		l.addToken(token.AT)
	case '#':
		l.addToken(token.HASH)
	case '$':
		l.addToken(token.DOLLAR)
	case '~':
		l.addToken(token.TILDE)

	// ----------------------------------------------------------
	// 可能是双字符的运算符（最长匹配）
	// ----------------------------------------------------------
	case '=':
		l.addToken(l.either('=', token.EQ, token.ASSIGN))
	case '!':
		l.addToken(l.either('=', token.NE, token.NOT))
	case '<':
		l.addToken(l.either('=', token.LE, token.LT))
	case '>':
		l.addToken(l.either('=', token.GE, token.GT))
	case '&':
		l.addToken(l.either('&', token.AND, token.AMPERSAND))
	case '|':
		l.addToken(l.either('|', token.OR, token.PIPE))

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	case '"':
		l.string()
	case '\'':
		l.char()

	case '_':
		// 单独的 _ 是 UNDERSCORE，后面紧跟标识符字符时开始一个标识符
		if isAlphaNumeric(l.peek()) {
			l.identifier()
		} else {
			l.addToken(token.UNDERSCORE)
		}

	default:
		if isDigit(ch) {
			l.number()
		} else if isAlpha(ch) {
			l.identifier()
		} else {
			l.error(UnexpectedChar, i18n.T(i18n.ErrUnexpectedChar, ch))
		}
	}
}

// either 若下一个字符是 next 则消费它并返回 two，否则返回 one
func (l *Lexer) either(next rune, two, one token.TokenType) token.TokenType {
	if l.match(next) {
		return two
	}
	return one
}

// ============================================================================
// 字符串和字符字面量
// ============================================================================

// string 扫描双引号字符串，开头的 " 已被消费
func (l *Lexer) string() {
	value, ok := l.quoted('"')
	if !ok {
		return
	}
	l.addTokenWithValue(token.STRING, value)
}

// char 扫描单引号字符字面量，开头的 ' 已被消费
func (l *Lexer) char() {
	value, ok := l.quoted('\'')
	if !ok {
		return
	}
	if utf8.RuneCountInString(value) != 1 {
		l.error(InvalidCharLiteral, i18n.T(i18n.ErrInvalidCharLiteral, value))
		return
	}
	r, _ := utf8.DecodeRuneInString(value)
	l.addTokenWithValue(token.CHAR, r)
}

// quoted 收集引号内的内容并处理转义序列
//
// 遇到结束引号或输入结束时返回；非法转义会中止整个扫描，此时 ok 为 false。
func (l *Lexer) quoted(quote rune) (string, bool) {
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != quote {
		escPos := l.here()
		ch := l.advance()
		if ch != '\\' {
			sb.WriteRune(ch)
			continue
		}

		if l.isAtEnd() {
			l.fatal(escPos, i18n.T(i18n.ErrEscapeAtEOF))
			return "", false
		}
		esc := l.advance()
		r, ok := unescape(esc)
		if !ok {
			l.fatal(escPos, i18n.T(i18n.ErrInvalidEscape, esc))
			return "", false
		}
		sb.WriteRune(r)
	}

	// 结束引号（未闭合时不报错）
	if !l.isAtEnd() {
		l.advance()
	}
	return sb.String(), true
}

// unescape 返回转义字符对应的值
func unescape(esc rune) (rune, bool) {
	switch esc {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	}
	return 0, false
}

// ============================================================================
// 数字和标识符
// ============================================================================

// number 扫描整数或浮点数
//
// 数字后紧跟 . 即为浮点数，小数部分可以为空（1. 等于 1.0）。
func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		l.advance() // 消费 .
		for isDigit(l.peek()) {
			l.advance()
		}

		text := l.source[l.start:l.current]
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.error(InvalidNumber, i18n.T(i18n.ErrInvalidFloat, text))
			return
		}
		l.addTokenWithValue(token.FLOAT, value)
		return
	}

	text := l.source[l.start:l.current]

	// 单位数整数快速路径
	if len(text) == 1 {
		l.addTokenWithValue(token.INT, int64(text[0]-'0'))
		return
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.error(InvalidNumber, i18n.T(i18n.ErrInvalidInteger, text))
		return
	}
	l.addTokenWithValue(token.INT, value)
}

// identifier 扫描标识符或关键字
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]
	l.addToken(token.LookupIdent(text))
}

// ============================================================================
// 辅助方法
// ============================================================================

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance 消费并返回当前字符，同时维护行号和列号
func (l *Lexer) advance() rune {
	if l.current >= len(l.source) {
		return 0
	}

	var r rune
	if b := l.source[l.current]; b < utf8.RuneSelf {
		// ASCII 快速路径
		r = rune(b)
		l.current++
	} else {
		var size int
		r, size = utf8.DecodeRuneInString(l.source[l.current:])
		l.current += size
	}

	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.current >= len(l.source) {
		return 0
	}
	if b := l.source[l.current]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	next := l.current + size
	if next >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[next:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

// here 返回扫描位置当前所在的位置
func (l *Lexer) here() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.current,
	}
}

// startPos 返回当前 token 起始位置
func (l *Lexer) startPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.startLine,
		Column:   l.startColumn,
		Offset:   l.start,
	}
}

func (l *Lexer) addToken(tokenType token.TokenType) {
	l.tokens = append(l.tokens, token.Token{
		Type:    tokenType,
		Literal: l.source[l.start:l.current],
		Pos:     l.startPos(),
	})
}

func (l *Lexer) addTokenWithValue(tokenType token.TokenType, value interface{}) {
	l.tokens = append(l.tokens, token.Token{
		Type:    tokenType,
		Literal: l.source[l.start:l.current],
		Value:   value,
		Pos:     l.startPos(),
	})
}

// error 记录一个可恢复的错误，并生成 ILLEGAL token
func (l *Lexer) error(kind ErrorKind, message string) {
	pos := l.startPos()
	l.errors = append(l.errors, Error{Pos: pos, Kind: kind, Message: message})
	l.tokens = append(l.tokens, token.NewWithValue(token.ILLEGAL, l.source[l.start:l.current], message, pos))
}

// fatal 记录一个不可恢复的错误并停止扫描
func (l *Lexer) fatal(pos token.Position, message string) {
	l.errors = append(l.errors, Error{Pos: pos, Kind: InvalidEscape, Message: message, Fatal: true})
	l.tokens = append(l.tokens, token.NewWithValue(token.ILLEGAL, l.source[pos.Offset:l.current], message, pos))
	l.halted = true
}

// KindOf 根据 ILLEGAL token 的原始文本推断错误类别
//
// 用于只拿到 token 序列、没有 Lexer 实例的场景。
func KindOf(tok token.Token) ErrorKind {
	if tok.Literal == "" {
		return UnexpectedChar
	}
	switch c := tok.Literal[0]; {
	case c == '\\':
		return InvalidEscape
	case c == '\'':
		return InvalidCharLiteral
	case isDigit(rune(c)):
		return InvalidNumber
	}
	return UnexpectedChar
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' ||
		(ch >= utf8.RuneSelf && unicode.IsLetter(ch))
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}
