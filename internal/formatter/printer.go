package formatter

import (
	"strings"

	"github.com/tangzhangming/wly/internal/ast"
)

// Printer AST 打印器
type Printer struct {
	options *Options
	buf     strings.Builder
	indent  int
}

// NewPrinter 创建打印器
func NewPrinter(options *Options) *Printer {
	return &Printer{options: options}
}

// Print 打印语句列表并返回格式化的代码
func (p *Printer) Print(stmts []ast.Statement) string {
	p.buf.Reset()
	p.indent = 0
	p.printStatements(stmts)

	result := p.buf.String()

	// 确保文件末尾有换行符
	if p.options.EnsureNewlineAtEOF && result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	if !p.options.EnsureNewlineAtEOF {
		result = strings.TrimSuffix(result, "\n")
	}

	return result
}

// printStatements 逐行打印语句，函数和类声明前后空一行
func (p *Printer) printStatements(stmts []ast.Statement) {
	for i, stmt := range stmts {
		if i > 0 && p.options.BlankLineAroundDecls && (isBlockDecl(stmt) || isBlockDecl(stmts[i-1])) {
			p.writeln()
		}
		p.writeIndent()
		p.printStatement(stmt)
		p.writeln()
	}
}

func isBlockDecl(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.FnDecl, *ast.ConstructorDecl, *ast.ClassDecl:
		return true
	}
	return false
}

// ============================================================================
// 基础输出
// ============================================================================

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) writeln(s ...string) {
	for _, str := range s {
		p.buf.WriteString(str)
	}
	p.buf.WriteString("\n")
}

func (p *Printer) writeIndent() {
	p.buf.WriteString(strings.Repeat(p.options.IndentString(), p.indent))
}

func (p *Printer) writeOperator(op string) {
	if p.options.SpaceAroundOps {
		p.write(" " + op + " ")
		return
	}
	p.write(op)
}

// ============================================================================
// 语句打印
// ============================================================================

func (p *Printer) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		p.printExpr(s.Expr)
		p.write(";")

	case *ast.VarDecl:
		p.printVarDecl(s)

	case *ast.ConstDecl:
		p.write("const ")
		p.printVarDecl(s.Decl)

	case *ast.FnDecl:
		p.write("fn ")
		p.write(s.Name.Name)
		p.printParams(s.Parameters)
		p.write(": ")
		p.write(s.ReturnType.String())
		p.write(" ")
		p.printBlock(s.Body)

	case *ast.ConstructorDecl:
		p.write("constructor")
		p.printParams(s.Parameters)
		p.write(" ")
		p.printBlock(s.Body)

	case *ast.ClassDecl:
		p.write("class ")
		p.write(s.Name.Name)
		p.write(" ")
		p.printBlock(s.Body)

	case *ast.ReturnStmt:
		p.write("return ")
		p.printExpr(s.Value)
		p.write(";")
	}
}

func (p *Printer) printVarDecl(s *ast.VarDecl) {
	p.write("var ")
	p.write(s.Name.Name)
	p.write(": ")
	p.write(s.Type.String())
	// 声明中的 = 不是运算符，类型结尾的 > 与之相连会被读成 >=
	p.write(" = ")
	p.printExpr(s.Value)
	p.write(";")
}

func (p *Printer) printParams(params []*ast.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name.Name)
		p.write(": ")
		p.write(param.Type.String())
	}
	p.write(")")
}

// printBlock 打印代码块，空代码块输出为 {}
func (p *Printer) printBlock(block *ast.Block) {
	if len(block.Statements) == 0 {
		p.write("{}")
		return
	}

	p.writeln("{")
	p.indent++
	p.printStatements(block.Statements)
	p.indent--
	p.writeIndent()
	p.write("}")
}

// ============================================================================
// 表达式打印
// ============================================================================
//
// 语法树保留了括号节点，按树结构原样输出即可保持结合方式不变。

func (p *Printer) printExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		p.printExpr(e.Left)
		p.writeOperator(e.Operator.Type.String())
		p.printExpr(e.Right)

	case *ast.UnaryExpr:
		p.write(e.Operator.Type.String())
		p.printExpr(e.Operand)

	case *ast.ParenExpr:
		p.write("(")
		p.printExpr(e.Inner)
		p.write(")")

	case *ast.CallExpr:
		p.write(e.Callee.Name)
		p.write("(")
		p.printExprList(e.Arguments)
		p.write(")")

	case *ast.IndexExpr:
		p.printExpr(e.Target)
		p.write("[")
		p.printExpr(e.Index)
		p.write("]")

	case *ast.SliceExpr:
		p.printExpr(e.Target)
		p.write("[")
		p.printExpr(e.Low)
		p.write(":")
		p.printExpr(e.High)
		p.write("]")

	case *ast.MemberExpr:
		p.printExpr(e.Target)
		p.write(".")
		p.write(e.Name.Name)

	case *ast.ArrayLiteral:
		p.write("[")
		p.printExprList(e.Elements)
		p.write("]")

	case *ast.MapLiteral:
		p.write("{")
		for i, pair := range e.Pairs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(pair.Key)
			p.write(": ")
			p.printExpr(pair.Value)
		}
		p.write("}")

	default:
		// 字面量和变量
		p.write(expr.String())
	}
}

func (p *Printer) printExprList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e)
	}
}
