package lexer

import (
	"strings"
	"testing"
)

// ============================================================================
// Lexer 基准测试
// ============================================================================
//
// 运行基准测试：
//   go test -bench=. -benchmem ./internal/lexer/...
//
// ============================================================================

// 测试源码样本：覆盖 wly 的常见语法结构
var benchSource = `
const var limit: int = 100;
var ratio: float = 0.75;
var names: array<string> = ["alice", "bob", "carol"];
var ages: map{string: int} = {"alice": 30, "bob": 25};

fn add(a: int, b: int): int {
    return a + b;
}

fn scale(x: float, factor: float): float {
    return (x * factor) / 2.0 - -x;
}

class Point {
    var x: int = 0;
    var y: int = 0;

    constructor(x: int, y: int) {
        print("new point\n");
    }

    fn norm(): int {
        return x * x + y * y;
    }
}

add(limit, 3) == 103;
!true != false;
names[0:2];
ages["alice"];
'\t';
`

// BenchmarkLexer 测试完整的词法分析性能
func BenchmarkLexer(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchSource)))

	for i := 0; i < b.N; i++ {
		lexer := New(benchSource, "bench.wly")
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerLargeFile 测试大文件的词法分析性能
func BenchmarkLexerLargeFile(b *testing.B) {
	largeSource := strings.Repeat(benchSource, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(largeSource)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lexer := New(largeSource, "large.wly")
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerWhitespace 测试空白字符跳过性能
func BenchmarkLexerWhitespace(b *testing.B) {
	source := strings.Repeat("    \t\t    \n", 1000) + "identifier"

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		lexer := New(source, "whitespace.wly")
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerStrings 测试字符串解析性能
func BenchmarkLexerStrings(b *testing.B) {
	source := `"simple string" "another string" "yet another"` +
		strings.Repeat(` "string with content number 123"`, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		lexer := New(source, "strings.wly")
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerStringsWithEscape 测试带转义的字符串解析性能
func BenchmarkLexerStringsWithEscape(b *testing.B) {
	source := strings.Repeat(`"hello\nworld\t\"escaped\""`, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		lexer := New(source, "escape.wly")
		_ = lexer.ScanTokens()
	}
}

// BenchmarkLexerNumbers 测试数字解析性能
func BenchmarkLexerNumbers(b *testing.B) {
	source := strings.Repeat("123 456 789 0 1 2 3 4 5 6 7 8 9 ", 50) +
		strings.Repeat("3.14 2.718 1.0 ", 30)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		lexer := New(source, "numbers.wly")
		_ = lexer.ScanTokens()
	}
}
