package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/tangzhangming/wly/internal/formatter"
)

// formatEdits 返回将文档格式化所需的编辑
//
// 有语法错误的文档不做修改。格式化结果以一次整篇替换的形式返回。
func formatEdits(doc *Document, opts protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	if doc.Err != nil {
		return []protocol.TextEdit{}, nil
	}

	options := formatter.DefaultOptions()
	if opts.TabSize > 0 {
		options.IndentSize = int(opts.TabSize)
	}
	if opts.InsertSpaces {
		options.IndentStyle = "spaces"
	} else {
		options.IndentStyle = "tabs"
	}

	formatted, err := formatter.Format(doc.Content, uriToPath(doc.URI), options)
	if err != nil {
		return nil, err
	}
	if formatted == doc.Content {
		return []protocol.TextEdit{}, nil
	}

	lastLine := len(doc.Lines)
	end := doc.position(lastLine, len([]rune(doc.Lines[lastLine-1]))+1)

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   end,
		},
		NewText: formatted,
	}}, nil
}
