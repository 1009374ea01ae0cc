package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/token"
)

// diagnosticSource 诊断来源名称
const diagnosticSource = "wly"

// Diagnostics 返回文档的诊断列表
//
// 解析在第一个错误处停止，所以列表最多只有一项；没有错误时返回空列表而不是 nil，
// 这样客户端会清除旧的诊断。
func Diagnostics(doc *Document) []protocol.Diagnostic {
	if doc.Err == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{doc.diagnostic(doc.Err)}
}

// diagnostic 将 CompileError 转换为 LSP 诊断
func (d *Document) diagnostic(ce *errors.CompileError) protocol.Diagnostic {
	start := d.position(ce.Line, ce.Column)
	end := d.position(ce.Line, ce.EndColumn)
	if end.Line != start.Line || end.Character <= start.Character {
		end = protocol.Position{Line: start.Line, Character: start.Character + 1}
	}

	message := ce.Message
	if len(ce.Hints) > 0 {
		message += "\n" + strings.Join(ce.Hints, "\n")
	}

	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: protocol.DiagnosticSeverityError,
		Code:     ce.Code,
		Source:   diagnosticSource,
		Message:  message,
	}
}

// position 将 1-based 的行列（按字符计）转换为 LSP 位置（0-based，按 UTF-16 码元计）
func (d *Document) position(line, column int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}

	var text string
	if line <= len(d.Lines) {
		text = d.Lines[line-1]
	}

	return protocol.Position{
		Line:      uint32(line - 1),
		Character: utf16Column(text, column),
	}
}

// tokenPosition 返回 token 位置对应的 LSP 位置
func (d *Document) tokenPosition(pos token.Position) protocol.Position {
	return d.position(pos.Line, pos.Column)
}

// utf16Column 计算第 column 个字符之前的 UTF-16 码元数
//
// 超出行尾的列（例如文件末尾）按每列一个码元计算。
func utf16Column(line string, column int) uint32 {
	units := 0
	for i := 1; i < column; i++ {
		if line == "" {
			units += column - i
			break
		}
		r, size := utf8.DecodeRuneInString(line)
		line = line[size:]
		if n := len(utf16.Encode([]rune{r})); n > 0 {
			units += n
		} else {
			units++
		}
	}
	return uint32(units)
}
