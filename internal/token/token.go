package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（ILLEGAL, EOF）
// 2. 字面量（标识符、整数、浮点数、字符串、字符）
// 3. 运算符（算术、比较、逻辑）
// 4. 分隔符（括号、逗号、分号等）
// 5. 关键字（类型、值、声明）
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	ILLEGAL TokenType = iota // 词法错误，Value 中保存错误信息
	EOF                      // 输入结束

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	IDENT  // 标识符
	INT    // 整数字面量
	FLOAT  // 浮点数字面量
	STRING // 字符串字面量 "..."
	CHAR   // 字符字面量 '...'

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^
	ASSIGN  // =

	// ----------------------------------------------------------
	// 比较运算符
	// ----------------------------------------------------------
	EQ // ==
	NE // !=
	LT // <
	LE // <=
	GT // >
	GE // >=

	// ----------------------------------------------------------
	// 逻辑运算符
	// ----------------------------------------------------------
	AND       // &&
	OR        // ||
	NOT       // !
	AMPERSAND // &
	PIPE      // |

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	COMMA      // ,
	DOT        // .
	COLON      // :
	SEMICOLON  // ;
	QUESTION   // ?
	AT         // @
	HASH       // #
	DOLLAR     // $
	UNDERSCORE // _
	TILDE      // ~

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	ARRAY       // array
	MAP         // map
	STRING_TYPE // string
	CHAR_TYPE   // char
	INT_TYPE    // int
	FLOAT_TYPE  // float
	BOOL_TYPE   // bool
	TRUE        // true
	FALSE       // false
	NULL        // null
	VAR         // var
	CONST       // const
	FN          // fn
	CLASS       // class
	CONSTRUCTOR // constructor
	RETURN      // return
	keyword_end // 关键字结束标记（不是实际 token）
)

// ============================================================================
// Token 类型名称映射
// ============================================================================

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	CARET:   "^",
	ASSIGN:  "=",

	EQ: "==",
	NE: "!=",
	LT: "<",
	LE: "<=",
	GT: ">",
	GE: ">=",

	AND:       "&&",
	OR:        "||",
	NOT:       "!",
	AMPERSAND: "&",
	PIPE:      "|",

	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	DOT:        ".",
	COLON:      ":",
	SEMICOLON:  ";",
	QUESTION:   "?",
	AT:         "@",
	HASH:       "#",
	DOLLAR:     "$",
	UNDERSCORE: "_",
	TILDE:      "~",

	ARRAY:       "array",
	MAP:         "map",
	STRING_TYPE: "string",
	CHAR_TYPE:   "char",
	INT_TYPE:    "int",
	FLOAT_TYPE:  "float",
	BOOL_TYPE:   "bool",
	TRUE:        "true",
	FALSE:       "false",
	NULL:        "null",
	VAR:         "var",
	CONST:       "const",
	FN:          "fn",
	CLASS:       "class",
	CONSTRUCTOR: "constructor",
	RETURN:      "return",
}

// ============================================================================
// 关键字查找表
// ============================================================================
//
// keywords 将关键字字符串映射到对应的 TokenType。
// 区分大小写，必须完全匹配。
//
// ============================================================================

var keywords = map[string]TokenType{
	// 类型关键字
	"array":  ARRAY,
	"map":    MAP,
	"string": STRING_TYPE,
	"char":   CHAR_TYPE,
	"int":    INT_TYPE,
	"float":  FLOAT_TYPE,
	"bool":   BOOL_TYPE,

	// 值关键字
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,

	// 声明关键字
	"var":         VAR,
	"const":       CONST,
	"fn":          FN,
	"class":       CLASS,
	"constructor": CONSTRUCTOR,
	"return":      RETURN,
}

// LookupIdent 查找标识符是否为关键字
//
// 返回:
//   - TokenType: 如果是关键字返回对应类型，否则返回 IDENT
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword 判断 TokenType 是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keyword_beg && t < keyword_end
}

// IsTypeKeyword 判断 TokenType 是否可以开始一个类型
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case ARRAY, MAP, STRING_TYPE, CHAR_TYPE, INT_TYPE, FLOAT_TYPE, BOOL_TYPE:
		return true
	}
	return false
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// MarshalText 让 TokenType 以名称形式出现在 JSON/YAML 输出中
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"` // 文件名
	Line     int    `json:"line" yaml:"line"`                               // 行号 (从1开始)
	Column   int    `json:"column" yaml:"column"`                           // 列号 (从1开始，按字符计)
	Offset   int    `json:"offset" yaml:"offset"`                           // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元
//
// - Type: token 类型
// - Literal: 源代码中的原始文本
// - Value: 解析后的值（int64、float64、string、rune；ILLEGAL 为错误信息）
// - Pos: 第一个字符的位置
type Token struct {
	Type    TokenType   `json:"type" yaml:"type"`
	Literal string      `json:"literal" yaml:"literal"`
	Value   interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Pos     Position    `json:"pos" yaml:"pos"`
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Type {
	case IDENT, INT, FLOAT, STRING, CHAR:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Literal, t.Pos)
	case ILLEGAL:
		return fmt.Sprintf("%s(%v) at %s", t.Type, t.Value, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
}

// Message 返回 ILLEGAL token 携带的错误信息
func (t Token) Message() string {
	if msg, ok := t.Value.(string); ok && t.Type == ILLEGAL {
		return msg
	}
	return ""
}

// ============================================================================
// Token 构造函数
// ============================================================================

// New 创建一个新的 Token
func New(tokenType TokenType, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Pos:     pos,
	}
}

// NewWithValue 创建一个带值的 Token
//
// 用于数字、字符串和字符字面量，value 参数存储解析后的实际值。
func NewWithValue(tokenType TokenType, literal string, value interface{}, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Value:   value,
		Pos:     pos,
	}
}
