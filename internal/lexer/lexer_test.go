package lexer

import (
	"testing"

	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/token"
)

func scan(input string) ([]token.Token, *Lexer) {
	l := New(input, "test.wly")
	return l.ScanTokens(), l
}

func TestLexerBasicTokens(t *testing.T) {
	input := `+ - * / % ^ ( ) { } [ ] , . : ; ? @ # $ _ ~ = == ! != < <= > >= & && | ||`

	expected := []token.TokenType{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
		token.COMMA, token.DOT, token.COLON, token.SEMICOLON, token.QUESTION,
		token.AT, token.HASH, token.DOLLAR, token.UNDERSCORE, token.TILDE,
		token.ASSIGN, token.EQ, token.NOT, token.NE,
		token.LT, token.LE, token.GT, token.GE,
		token.AMPERSAND, token.AND, token.PIPE, token.OR,
	}

	tokens, l := scan(input)
	if l.HasErrors() {
		t.Fatalf("unexpected errors: %v", l.Errors())
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d", len(tokens), len(expected))
	}

	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token[%d] type mismatch: got %s, want %s", i, tok.Type, expected[i])
		}
	}
}

func TestLexerLongestMatch(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
	}{
		{"==", []token.TokenType{token.EQ}},
		{"===", []token.TokenType{token.EQ, token.ASSIGN}},
		{"= =", []token.TokenType{token.ASSIGN, token.ASSIGN}},
		{"=a", []token.TokenType{token.ASSIGN, token.IDENT}},
		{"!==", []token.TokenType{token.NE, token.ASSIGN}},
		{"<<=", []token.TokenType{token.LT, token.LE}},
		{">>=", []token.TokenType{token.GT, token.GE}},
		{"&&&", []token.TokenType{token.AND, token.AMPERSAND}},
		{"|||", []token.TokenType{token.OR, token.PIPE}},
		{"!", []token.TokenType{token.NOT}},
	}

	for _, tt := range tests {
		tokens, _ := scan(tt.input)
		if len(tokens) != len(tt.expected) {
			t.Errorf("%q: got %d tokens, want %d", tt.input, len(tokens), len(tt.expected))
			continue
		}
		for i, tok := range tokens {
			if tok.Type != tt.expected[i] {
				t.Errorf("%q: token[%d] got %s, want %s", tt.input, i, tok.Type, tt.expected[i])
			}
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	input := `array map string char int float bool true false null var const fn class constructor return`

	expected := []token.TokenType{
		token.ARRAY, token.MAP, token.STRING_TYPE, token.CHAR_TYPE, token.INT_TYPE,
		token.FLOAT_TYPE, token.BOOL_TYPE, token.TRUE, token.FALSE, token.NULL,
		token.VAR, token.CONST, token.FN, token.CLASS, token.CONSTRUCTOR, token.RETURN,
	}

	tokens, _ := scan(input)
	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d", len(tokens), len(expected))
	}

	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token[%d] type mismatch: got %s, want %s (literal: %s)",
				i, tok.Type, expected[i], tok.Literal)
		}
		if !token.IsKeyword(tok.Type) {
			t.Errorf("token[%d] %s should be a keyword", i, tok.Type)
		}
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.TokenType
		literal string
	}{
		{"x", token.IDENT, "x"},
		{"count2", token.IDENT, "count2"},
		{"_tmp", token.IDENT, "_tmp"},
		{"__", token.IDENT, "__"},
		{"_", token.UNDERSCORE, "_"},
		{"Var", token.IDENT, "Var"},
		{"variable", token.IDENT, "variable"},
		{"名字", token.IDENT, "名字"},
	}

	for _, tt := range tests {
		tokens, _ := scan(tt.input)
		if len(tokens) != 1 {
			t.Errorf("%q: got %d tokens, want 1", tt.input, len(tokens))
			continue
		}
		if tokens[0].Type != tt.typ || tokens[0].Literal != tt.literal {
			t.Errorf("%q: got %s(%q), want %s(%q)", tt.input,
				tokens[0].Type, tokens[0].Literal, tt.typ, tt.literal)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected token.TokenType
		value    interface{}
	}{
		{"0", token.INT, int64(0)},
		{"7", token.INT, int64(7)},
		{"123", token.INT, int64(123)},
		{"9223372036854775807", token.INT, int64(9223372036854775807)},
		{"3.14", token.FLOAT, 3.14},
		{"0.5", token.FLOAT, 0.5},
		{"10.0", token.FLOAT, 10.0},
	}

	for _, tt := range tests {
		tokens, _ := scan(tt.input)
		if len(tokens) != 1 {
			t.Errorf("%q: got %d tokens, want 1", tt.input, len(tokens))
			continue
		}
		tok := tokens[0]
		if tok.Type != tt.expected {
			t.Errorf("%q: type got %s, want %s", tt.input, tok.Type, tt.expected)
		}
		if tok.Value != tt.value {
			t.Errorf("%q: value got %v (%T), want %v (%T)", tt.input, tok.Value, tok.Value, tt.value, tt.value)
		}
		if tok.Literal != tt.input {
			t.Errorf("%q: literal got %q", tt.input, tok.Literal)
		}
	}
}

func TestLexerNumberFollowedByDot(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
		value    float64
		literal  string
	}{
		{"1.", []token.TokenType{token.FLOAT}, 1, "1."},
		{"1.x", []token.TokenType{token.FLOAT, token.IDENT}, 1, "1."},
		{"12..5", []token.TokenType{token.FLOAT, token.DOT, token.INT}, 12, "12."},
		{"3.25", []token.TokenType{token.FLOAT}, 3.25, "3.25"},
	}

	for _, tt := range tests {
		tokens, l := scan(tt.input)
		if l.HasErrors() {
			t.Errorf("%q: unexpected errors %v", tt.input, l.Errors())
			continue
		}
		if len(tokens) != len(tt.expected) {
			t.Errorf("%q: got %d tokens, want %d", tt.input, len(tokens), len(tt.expected))
			continue
		}
		for i, tok := range tokens {
			if tok.Type != tt.expected[i] {
				t.Errorf("%q: token[%d] got %s, want %s", tt.input, i, tok.Type, tt.expected[i])
			}
		}
		if tokens[0].Literal != tt.literal {
			t.Errorf("%q: literal got %q, want %q", tt.input, tokens[0].Literal, tt.literal)
		}
		if v, ok := tokens[0].Value.(float64); !ok || v != tt.value {
			t.Errorf("%q: value got %v (%T), want %v", tt.input, tokens[0].Value, tokens[0].Value, tt.value)
		}
	}
}

func TestLexerIntegerOverflow(t *testing.T) {
	tokens, l := scan("99999999999999999999 1")
	if !l.HasErrors() {
		t.Fatal("expected overflow error")
	}
	if tokens[0].Type != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", tokens[0].Type)
	}
	// 溢出不是致命错误
	if len(tokens) != 2 || tokens[1].Type != token.INT {
		t.Errorf("scanning should continue after overflow, got %v", tokens)
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"\r\0"`, "\r\x00"},
		{`"q\"q"`, `q"q`},
		{`"it\'s"`, "it's"},
		{`"back\\slash"`, `back\slash`},
		{`"你好"`, "你好"},
	}

	for _, tt := range tests {
		tokens, l := scan(tt.input)
		if l.HasErrors() {
			t.Errorf("%s: unexpected errors: %v", tt.input, l.Errors())
			continue
		}
		if len(tokens) != 1 || tokens[0].Type != token.STRING {
			t.Errorf("%s: got %v, want one STRING", tt.input, tokens)
			continue
		}
		if tokens[0].Value != tt.value {
			t.Errorf("%s: value got %q, want %q", tt.input, tokens[0].Value, tt.value)
		}
		if tokens[0].Literal != tt.input {
			t.Errorf("%s: literal got %q", tt.input, tokens[0].Literal)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens, l := scan(`"unterminated`)
	if l.HasErrors() {
		t.Fatalf("unterminated string must not be an error, got %v", l.Errors())
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Type != token.STRING || tokens[0].Value != "unterminated" {
		t.Errorf("got %s(%v), want STRING(unterminated)", tokens[0].Type, tokens[0].Value)
	}
}

func TestLexerChars(t *testing.T) {
	tests := []struct {
		input string
		value rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\''`, '\''},
		{`'\\'`, '\\'},
		{`'"'`, '"'},
		{`'中'`, '中'},
		{`'z`, 'z'},
	}

	for _, tt := range tests {
		tokens, l := scan(tt.input)
		if l.HasErrors() {
			t.Errorf("%s: unexpected errors: %v", tt.input, l.Errors())
			continue
		}
		if len(tokens) != 1 || tokens[0].Type != token.CHAR {
			t.Errorf("%s: got %v, want one CHAR", tt.input, tokens)
			continue
		}
		if tokens[0].Value != tt.value {
			t.Errorf("%s: value got %q, want %q", tt.input, tokens[0].Value, tt.value)
		}
	}
}

func TestLexerInvalidCharLiteral(t *testing.T) {
	tests := []string{`'' x`, `'ab' x`}

	for _, input := range tests {
		tokens, l := scan(input)
		if len(l.Errors()) != 1 {
			t.Errorf("%s: got %d errors, want 1", input, len(l.Errors()))
			continue
		}
		if l.Halted() {
			t.Errorf("%s: invalid char literal length must not halt the lexer", input)
		}
		if len(tokens) != 2 || tokens[0].Type != token.ILLEGAL || tokens[1].Type != token.IDENT {
			t.Errorf("%s: got %v, want ILLEGAL IDENT", input, tokens)
		}
	}
}

func TestLexerInvalidEscapeHalts(t *testing.T) {
	tests := []struct {
		input  string
		before int // ILLEGAL 之前的 token 数
		column int
	}{
		{`x "a\qb" y z`, 1, 5},
		{`x 'a\q' y`, 1, 5},
		{`"abc\`, 0, 5},
		{`'\`, 0, 2},
	}

	for _, tt := range tests {
		tokens, l := scan(tt.input)
		if !l.Halted() {
			t.Errorf("%s: lexer should halt", tt.input)
		}
		if len(tokens) != tt.before+1 {
			t.Errorf("%s: got %d tokens, want %d: %v", tt.input, len(tokens), tt.before+1, tokens)
			continue
		}
		last := tokens[len(tokens)-1]
		if last.Type != token.ILLEGAL {
			t.Errorf("%s: last token got %s, want ILLEGAL", tt.input, last.Type)
		}
		if last.Pos.Column != tt.column {
			t.Errorf("%s: error column got %d, want %d", tt.input, last.Pos.Column, tt.column)
		}
		if last.Message() == "" {
			t.Errorf("%s: ILLEGAL token carries no message", tt.input)
		}
		if errs := l.Errors(); len(errs) != 1 || !errs[0].Fatal {
			t.Errorf("%s: want exactly one fatal error, got %v", tt.input, errs)
		}
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	tokens, l := scan("a ` b")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[1].Type != token.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tokens[1].Type)
	}
	if got, want := tokens[1].Message(), "invalid character '`'"; got != want {
		t.Errorf("message got %q, want %q", got, want)
	}
	if l.Halted() {
		t.Error("invalid character must not halt the lexer")
	}
}

func TestLexerPositions(t *testing.T) {
	input := "var x: int = 5;\n  fn\n\n\"a\nb\" y"

	expected := []struct {
		typ    token.TokenType
		line   int
		column int
	}{
		{token.VAR, 1, 1},
		{token.IDENT, 1, 5},
		{token.COLON, 1, 6},
		{token.INT_TYPE, 1, 8},
		{token.ASSIGN, 1, 12},
		{token.INT, 1, 14},
		{token.SEMICOLON, 1, 15},
		{token.FN, 2, 3},
		{token.STRING, 4, 1},
		{token.IDENT, 5, 4},
	}

	tokens, _ := scan(input)
	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d", len(tokens), len(expected))
	}

	for i, exp := range expected {
		tok := tokens[i]
		if tok.Type != exp.typ {
			t.Errorf("token[%d] type got %s, want %s", i, tok.Type, exp.typ)
		}
		if tok.Pos.Line != exp.line || tok.Pos.Column != exp.column {
			t.Errorf("token[%d] %s position got %d:%d, want %d:%d",
				i, tok.Type, tok.Pos.Line, tok.Pos.Column, exp.line, exp.column)
		}
		if tok.Pos.Filename != "test.wly" {
			t.Errorf("token[%d] filename got %q", i, tok.Pos.Filename)
		}
	}
}

func TestLexerOffsets(t *testing.T) {
	input := "fn  名字 = 1"
	tokens, _ := scan(input)
	for _, tok := range tokens {
		if got := input[tok.Pos.Offset : tok.Pos.Offset+len(tok.Literal)]; got != tok.Literal {
			t.Errorf("%s: offset %d points at %q, want %q", tok.Type, tok.Pos.Offset, got, tok.Literal)
		}
	}
	// 列号按字符计
	if tokens[2].Pos.Column != 8 {
		t.Errorf("column after wide identifier got %d, want 8", tokens[2].Pos.Column)
	}
}

func TestLexerNoEOFToken(t *testing.T) {
	tokens, _ := scan("")
	if len(tokens) != 0 {
		t.Errorf("empty input should produce no tokens, got %v", tokens)
	}

	tokens, _ = scan("x  \n\t")
	if len(tokens) != 1 || tokens[0].Type != token.IDENT {
		t.Errorf("got %v, want single IDENT", tokens)
	}
}

func TestTokenizeScenario(t *testing.T) {
	tokens, errs := Tokenize("var x: int = 5;", "test.wly")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.INT_TYPE, "int"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d", len(tokens), len(expected))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp.typ || tokens[i].Literal != exp.literal {
			t.Errorf("token[%d] got %s(%q), want %s(%q)", i, tokens[i].Type, tokens[i].Literal, exp.typ, exp.literal)
		}
	}
	if tokens[5].Value != int64(5) {
		t.Errorf("integer value got %v", tokens[5].Value)
	}
}
