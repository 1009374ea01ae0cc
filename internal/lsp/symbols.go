package lsp

import (
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/wly/internal/ast"
	"github.com/tangzhangming/wly/internal/token"
)

// DocumentSymbols 返回文档顶层声明的符号树
//
// 类声明的成员作为子符号。解析失败的文档没有符号。
func DocumentSymbols(doc *Document) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, stmt := range doc.Statements {
		if sym, ok := doc.symbol(stmt, false); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// symbol 为声明语句生成符号，inClass 表示语句位于类体内
func (d *Document) symbol(stmt ast.Statement, inClass bool) (protocol.DocumentSymbol, bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		kind := protocol.SymbolKindVariable
		if inClass {
			kind = protocol.SymbolKindField
		}
		return protocol.DocumentSymbol{
			Name:           s.Name.Name,
			Detail:         s.Type.String(),
			Kind:           kind,
			Range:          d.nodeRange(s),
			SelectionRange: d.tokenRange(s.Name.Token),
		}, true

	case *ast.ConstDecl:
		return protocol.DocumentSymbol{
			Name:           s.Decl.Name.Name,
			Detail:         s.Decl.Type.String(),
			Kind:           protocol.SymbolKindConstant,
			Range:          d.nodeRange(s),
			SelectionRange: d.tokenRange(s.Decl.Name.Token),
		}, true

	case *ast.FnDecl:
		kind := protocol.SymbolKindFunction
		if inClass {
			kind = protocol.SymbolKindMethod
		}
		return protocol.DocumentSymbol{
			Name:           s.Name.Name,
			Detail:         signature(s.Parameters, s.ReturnType),
			Kind:           kind,
			Range:          d.nodeRange(s),
			SelectionRange: d.tokenRange(s.Name.Token),
		}, true

	case *ast.ConstructorDecl:
		return protocol.DocumentSymbol{
			Name:           s.CtorToken.Literal,
			Detail:         signature(s.Parameters, nil),
			Kind:           protocol.SymbolKindConstructor,
			Range:          d.nodeRange(s),
			SelectionRange: d.tokenRange(s.CtorToken),
		}, true

	case *ast.ClassDecl:
		sym := protocol.DocumentSymbol{
			Name:           s.Name.Name,
			Kind:           protocol.SymbolKindClass,
			Range:          d.nodeRange(s),
			SelectionRange: d.tokenRange(s.Name.Token),
		}
		sym.Children = d.memberSymbols(s.Body)
		return sym, true
	}

	return protocol.DocumentSymbol{}, false
}

// memberSymbols 收集类体中直接声明的成员，不进入方法体
func (d *Document) memberSymbols(body *ast.Block) []protocol.DocumentSymbol {
	var members []protocol.DocumentSymbol
	ast.Walk(body, func(node ast.Node) bool {
		if node == body {
			return true
		}
		if stmt, ok := node.(ast.Statement); ok {
			if child, ok := d.symbol(stmt, true); ok {
				members = append(members, child)
			}
		}
		return false
	})
	return members
}

// signature 生成函数签名描述，如 "(a: int, b: float): int"
func signature(params []*ast.Parameter, ret ast.TypeNode) string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if ret != nil {
		sb.WriteString(": ")
		sb.WriteString(ret.String())
	}
	return sb.String()
}

// nodeRange 节点从第一个 token 开始，到最后一个 token 的首字符之后结束
func (d *Document) nodeRange(node ast.Node) protocol.Range {
	end := d.tokenPosition(node.End())
	end.Character++
	return protocol.Range{
		Start: d.tokenPosition(node.Pos()),
		End:   end,
	}
}

// tokenRange 覆盖整个 token
func (d *Document) tokenRange(tok token.Token) protocol.Range {
	width := utf8.RuneCountInString(tok.Literal)
	return protocol.Range{
		Start: d.tokenPosition(tok.Pos),
		End:   d.position(tok.Pos.Line, tok.Pos.Column+width),
	}
}
