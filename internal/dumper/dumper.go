// Package dumper 以缩进文本形式输出语法树，用于诊断
package dumper

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tangzhangming/wly/internal/ast"
)

// ============================================================================
// Dumper - 语法树输出
// ============================================================================
//
// 每个节点输出一行类别标签，子节点缩进一层。输出只读取语法树，
// 对同一棵树多次输出结果完全相同。
//
// 示例（var x: int = 5;）:
//
//	VariableDeclaration
//	  Identifier: x
//	  Type: int
//	  Initializer:
//	    Literal
//	      Integer: 5
//
// ============================================================================

// Dumper 语法树输出器
type Dumper struct {
	options *Options
	buf     strings.Builder
	indent  int
}

// New 创建输出器，options 为 nil 时使用默认选项
//
// 选项在创建时复制，之后修改 options 不影响已有的输出器。
func New(options *Options) *Dumper {
	opts := *DefaultOptions()
	if options != nil {
		opts = *options
	}
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultOptions().IndentSize
	}
	return &Dumper{options: &opts}
}

// Dump 使用默认选项返回语法树的文本表示
func Dump(stmts []ast.Statement) string {
	return New(nil).Dump(stmts)
}

// Fdump 使用默认选项将语法树写入 w
func Fdump(w io.Writer, stmts []ast.Statement) error {
	return New(nil).Fdump(w, stmts)
}

// Dump 返回语法树的文本表示
func (d *Dumper) Dump(stmts []ast.Statement) string {
	d.buf.Reset()
	d.indent = 0
	for _, stmt := range stmts {
		d.statement(stmt)
	}
	return d.buf.String()
}

// Fdump 将语法树写入 w
func (d *Dumper) Fdump(w io.Writer, stmts []ast.Statement) error {
	_, err := io.WriteString(w, d.Dump(stmts))
	return err
}

// ============================================================================
// 输出辅助
// ============================================================================

// node 输出节点类别行
func (d *Dumper) node(label string, n ast.Node) {
	if d.options.ShowPositions {
		pos := n.Pos()
		d.line(fmt.Sprintf("%s @%d:%d", label, pos.Line, pos.Column))
		return
	}
	d.line(label)
}

func (d *Dumper) line(s string) {
	d.buf.WriteString(strings.Repeat(" ", d.indent*d.options.IndentSize))
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
}

func (d *Dumper) field(name, value string) {
	d.line(name + ": " + value)
}

// nested 在缩进一层的上下文中执行 fn
func (d *Dumper) nested(fn func()) {
	d.indent++
	fn()
	d.indent--
}

// ============================================================================
// 语句
// ============================================================================

func (d *Dumper) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		d.node("Expression", s)
		d.nested(func() { d.expression(s.Expr) })

	case *ast.VarDecl:
		d.node("VariableDeclaration", s)
		d.nested(func() { d.varDecl(s) })

	case *ast.ConstDecl:
		// 被包装的声明与 ConstantDeclaration 的内容处于同一层
		d.node("ConstantDeclaration", s)
		d.nested(func() { d.statement(s.Decl) })

	case *ast.FnDecl:
		d.node("FunctionDeclaration", s)
		d.nested(func() {
			d.field("Identifier", s.Name.Name)
			d.parameters(s.Parameters)
			d.field("ReturnType", s.ReturnType.String())
			d.body(s.Body)
		})

	case *ast.ConstructorDecl:
		d.node("ConstructorDeclaration", s)
		d.nested(func() {
			d.parameters(s.Parameters)
			d.body(s.Body)
		})

	case *ast.ClassDecl:
		d.node("ClassDeclaration", s)
		d.nested(func() {
			d.field("Identifier", s.Name.Name)
			d.body(s.Body)
		})

	case *ast.ReturnStmt:
		d.node("Return", s)
		d.nested(func() {
			d.line("Value:")
			d.nested(func() { d.expression(s.Value) })
		})

	default:
		d.node("Statement", stmt)
	}
}

func (d *Dumper) varDecl(s *ast.VarDecl) {
	d.field("Identifier", s.Name.Name)
	d.field("Type", s.Type.String())
	d.line("Initializer:")
	d.nested(func() { d.expression(s.Value) })
}

func (d *Dumper) parameters(params []*ast.Parameter) {
	d.line("Parameters:")
	d.nested(func() {
		for _, p := range params {
			d.line("Identifier: " + p.Name.Name + ", Type: " + p.Type.String())
		}
	})
}

func (d *Dumper) body(block *ast.Block) {
	d.line("Body:")
	d.nested(func() {
		for _, stmt := range block.Statements {
			d.statement(stmt)
		}
	})
}

// ============================================================================
// 表达式
// ============================================================================

func (d *Dumper) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		d.literal(e, "Integer: "+strconv.FormatInt(e.Value, 10))
	case *ast.FloatLiteral:
		d.literal(e, "Float: "+strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.StringLiteral:
		d.literal(e, "String: "+ast.QuoteString(e.Value))
	case *ast.CharLiteral:
		d.literal(e, "Character: "+ast.QuoteChar(e.Value))
	case *ast.BoolLiteral:
		d.literal(e, "Boolean: "+strconv.FormatBool(e.Value))
	case *ast.NullLiteral:
		d.literal(e, "Null")

	case *ast.Variable:
		d.node("Variable", e)
		d.nested(func() { d.field("Variable", e.Name) })

	case *ast.BinaryExpr:
		d.node("Binary", e)
		d.nested(func() {
			d.field("Operator", e.Operator.Type.String())
			d.line("Left:")
			d.nested(func() { d.expression(e.Left) })
			d.line("Right:")
			d.nested(func() { d.expression(e.Right) })
		})

	case *ast.UnaryExpr:
		d.node("Unary", e)
		d.nested(func() {
			d.field("Operator", e.Operator.Type.String())
			d.line("Right:")
			d.nested(func() { d.expression(e.Operand) })
		})

	case *ast.CallExpr:
		d.node("Call", e)
		d.nested(func() {
			d.field("Callee", e.Callee.Name)
			d.line("Arguments:")
			d.nested(func() {
				for _, arg := range e.Arguments {
					d.expression(arg)
				}
			})
		})

	case *ast.ParenExpr:
		d.node("Parenthesized", e)
		d.nested(func() {
			d.line("Expression:")
			d.nested(func() { d.expression(e.Inner) })
		})

	case *ast.IndexExpr:
		d.node("Index", e)
		d.nested(func() {
			d.child("Target:", e.Target)
			d.child("Index:", e.Index)
		})

	case *ast.SliceExpr:
		d.node("Slice", e)
		d.nested(func() {
			d.child("Target:", e.Target)
			d.child("Low:", e.Low)
			d.child("High:", e.High)
		})

	case *ast.MemberExpr:
		d.node("Member", e)
		d.nested(func() {
			d.child("Target:", e.Target)
			d.field("Name", e.Name.Name)
		})

	case *ast.ArrayLiteral:
		d.node("Array", e)
		d.nested(func() {
			d.line("Elements:")
			d.nested(func() {
				for _, elem := range e.Elements {
					d.expression(elem)
				}
			})
		})

	case *ast.MapLiteral:
		d.node("Map", e)
		d.nested(func() {
			d.line("Entries:")
			d.nested(func() {
				for _, pair := range e.Pairs {
					d.child("Key:", pair.Key)
					d.child("Value:", pair.Value)
				}
			})
		})

	default:
		d.node("Expression", expr)
	}
}

// literal 输出 Literal 节点及其取值行
func (d *Dumper) literal(e ast.Expression, value string) {
	d.node("Literal", e)
	d.nested(func() { d.line(value) })
}

// child 输出带标签的子表达式
func (d *Dumper) child(label string, expr ast.Expression) {
	d.line(label)
	d.nested(func() { d.expression(expr) })
}
