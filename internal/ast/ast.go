package ast

import (
	"strconv"
	"strings"

	"github.com/tangzhangming/wly/internal/token"
)

// Node 是所有 AST 节点的基接口
//
// 节点的 Pos() 总是等于构建该节点时消费的第一个 token 的位置。
type Node interface {
	Pos() token.Position // 返回节点在源代码中的位置
	End() token.Position // 返回节点最后一个 token 的位置
	String() string      // 返回节点的字符串表示（用于调试）
}

// Expression 表示一个表达式节点
type Expression interface {
	Node
	exprNode()
}

// Statement 表示一个语句节点
type Statement interface {
	Node
	stmtNode()
}

// TypeNode 表示类型节点
type TypeNode interface {
	Node
	typeNode()
}

// Literal 表示字面量表达式
type Literal interface {
	Expression
	literalNode()
}

// ============================================================================
// 类型节点
// ============================================================================

// SimpleType 简单类型 (string, char, int, float, bool)
type SimpleType struct {
	Token token.Token // 类型 token
	Name  string      // 类型名称
}

func (t *SimpleType) Pos() token.Position { return t.Token.Pos }
func (t *SimpleType) End() token.Position { return t.Token.Pos }
func (t *SimpleType) String() string      { return t.Name }
func (t *SimpleType) typeNode()           {}

// ArrayType 数组类型 array<T>
type ArrayType struct {
	ArrayToken  token.Token // array token
	LAngle      token.Token // <
	ElementType TypeNode    // 元素类型
	RAngle      token.Token // >
}

func (t *ArrayType) Pos() token.Position { return t.ArrayToken.Pos }
func (t *ArrayType) End() token.Position { return t.RAngle.Pos }
func (t *ArrayType) String() string {
	return "array<" + t.ElementType.String() + ">"
}
func (t *ArrayType) typeNode() {}

// MapType 映射类型 map{K: V}
type MapType struct {
	MapToken  token.Token // map token
	LBrace    token.Token // {
	KeyType   TypeNode    // 键类型
	ValueType TypeNode    // 值类型
	RBrace    token.Token // }
}

func (t *MapType) Pos() token.Position { return t.MapToken.Pos }
func (t *MapType) End() token.Position { return t.RBrace.Pos }
func (t *MapType) String() string {
	return "map{" + t.KeyType.String() + ": " + t.ValueType.String() + "}"
}
func (t *MapType) typeNode() {}

// ============================================================================
// 表达式节点
// ============================================================================

// Identifier 标识符（声明名、参数名、成员名）
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) Pos() token.Position { return e.Token.Pos }
func (e *Identifier) End() token.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Name }

// Variable 变量引用
type Variable struct {
	Token token.Token
	Name  string
}

func (e *Variable) Pos() token.Position { return e.Token.Pos }
func (e *Variable) End() token.Position { return e.Token.Pos }
func (e *Variable) String() string      { return e.Name }
func (e *Variable) exprNode()           {}

// IntegerLiteral 整数字面量
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (e *IntegerLiteral) Pos() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) End() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) String() string      { return strconv.FormatInt(e.Value, 10) }
func (e *IntegerLiteral) exprNode()           {}
func (e *IntegerLiteral) literalNode()        {}

// FloatLiteral 浮点数字面量
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (e *FloatLiteral) Pos() token.Position { return e.Token.Pos }
func (e *FloatLiteral) End() token.Position { return e.Token.Pos }
func (e *FloatLiteral) String() string      { return e.Token.Literal }
func (e *FloatLiteral) exprNode()           {}
func (e *FloatLiteral) literalNode()        {}

// StringLiteral 字符串字面量
type StringLiteral struct {
	Token token.Token
	Value string // 已处理转义
}

func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) End() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return QuoteString(e.Value) }
func (e *StringLiteral) exprNode()           {}
func (e *StringLiteral) literalNode()        {}

// CharLiteral 字符字面量
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (e *CharLiteral) Pos() token.Position { return e.Token.Pos }
func (e *CharLiteral) End() token.Position { return e.Token.Pos }
func (e *CharLiteral) String() string      { return QuoteChar(e.Value) }
func (e *CharLiteral) exprNode()           {}
func (e *CharLiteral) literalNode()        {}

// BoolLiteral 布尔字面量
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BoolLiteral) End() token.Position { return e.Token.Pos }
func (e *BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}
func (e *BoolLiteral) exprNode()    {}
func (e *BoolLiteral) literalNode() {}

// NullLiteral null 字面量
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NullLiteral) End() token.Position { return e.Token.Pos }
func (e *NullLiteral) String() string      { return "null" }
func (e *NullLiteral) exprNode()           {}
func (e *NullLiteral) literalNode()        {}

// ArrayLiteral 数组字面量 [1, 2, 3]
type ArrayLiteral struct {
	LBracket token.Token // [
	Elements []Expression
	RBracket token.Token // ]
}

func (e *ArrayLiteral) Pos() token.Position { return e.LBracket.Pos }
func (e *ArrayLiteral) End() token.Position { return e.RBracket.Pos }
func (e *ArrayLiteral) String() string {
	return "[" + joinExprs(e.Elements) + "]"
}
func (e *ArrayLiteral) exprNode()    {}
func (e *ArrayLiteral) literalNode() {}

// MapLiteral Map 字面量 {"key": value, ...}
type MapLiteral struct {
	LBrace token.Token // {
	Pairs  []MapPair
	RBrace token.Token // }
}

// MapPair 键值对
type MapPair struct {
	Key   Expression
	Colon token.Token
	Value Expression
}

func (e *MapLiteral) Pos() token.Position { return e.LBrace.Pos }
func (e *MapLiteral) End() token.Position { return e.RBrace.Pos }
func (e *MapLiteral) String() string {
	var pairs []string
	for _, p := range e.Pairs {
		pairs = append(pairs, p.Key.String()+": "+p.Value.String())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
func (e *MapLiteral) exprNode()    {}
func (e *MapLiteral) literalNode() {}

// BinaryExpr 二元表达式
type BinaryExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }
func (e *BinaryExpr) End() token.Position { return e.Right.End() }
func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + e.Operator.Type.String() + " " + e.Right.String()
}
func (e *BinaryExpr) exprNode() {}

// UnaryExpr 一元表达式 (!x, -x)
type UnaryExpr struct {
	Operator token.Token
	Operand  Expression
}

func (e *UnaryExpr) Pos() token.Position { return e.Operator.Pos }
func (e *UnaryExpr) End() token.Position { return e.Operand.End() }
func (e *UnaryExpr) String() string      { return e.Operator.Type.String() + e.Operand.String() }
func (e *UnaryExpr) exprNode()           {}

// ParenExpr 括号表达式
type ParenExpr struct {
	LParen token.Token
	Inner  Expression
	RParen token.Token
}

func (e *ParenExpr) Pos() token.Position { return e.LParen.Pos }
func (e *ParenExpr) End() token.Position { return e.RParen.Pos }
func (e *ParenExpr) String() string      { return "(" + e.Inner.String() + ")" }
func (e *ParenExpr) exprNode()           {}

// CallExpr 函数调用 name(args)
type CallExpr struct {
	Callee    *Identifier
	LParen    token.Token
	Arguments []Expression
	RParen    token.Token
}

func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (e *CallExpr) End() token.Position { return e.RParen.Pos }
func (e *CallExpr) String() string {
	return e.Callee.Name + "(" + joinExprs(e.Arguments) + ")"
}
func (e *CallExpr) exprNode() {}

// IndexExpr 索引访问 target[index]
type IndexExpr struct {
	Target   Expression
	LBracket token.Token
	Index    Expression
	RBracket token.Token
}

func (e *IndexExpr) Pos() token.Position { return e.Target.Pos() }
func (e *IndexExpr) End() token.Position { return e.RBracket.Pos }
func (e *IndexExpr) String() string {
	return e.Target.String() + "[" + e.Index.String() + "]"
}
func (e *IndexExpr) exprNode() {}

// SliceExpr 切片 target[low:high]
type SliceExpr struct {
	Target   Expression
	LBracket token.Token
	Low      Expression
	Colon    token.Token
	High     Expression
	RBracket token.Token
}

func (e *SliceExpr) Pos() token.Position { return e.Target.Pos() }
func (e *SliceExpr) End() token.Position { return e.RBracket.Pos }
func (e *SliceExpr) String() string {
	return e.Target.String() + "[" + e.Low.String() + ":" + e.High.String() + "]"
}
func (e *SliceExpr) exprNode() {}

// MemberExpr 成员访问 target.name
type MemberExpr struct {
	Target Expression
	Dot    token.Token
	Name   *Identifier
}

func (e *MemberExpr) Pos() token.Position { return e.Target.Pos() }
func (e *MemberExpr) End() token.Position { return e.Name.End() }
func (e *MemberExpr) String() string      { return e.Target.String() + "." + e.Name.Name }
func (e *MemberExpr) exprNode()           {}

// ============================================================================
// 语句节点
// ============================================================================

// ExprStmt 表达式语句，末尾分号可省略
type ExprStmt struct {
	Expr      Expression
	Semicolon token.Token // 没有分号时为零值
}

func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) End() token.Position {
	if s.HasSemicolon() {
		return s.Semicolon.Pos
	}
	return s.Expr.End()
}
func (s *ExprStmt) String() string { return s.Expr.String() + ";" }
func (s *ExprStmt) stmtNode()      {}

// HasSemicolon 报告语句是否以分号结尾
func (s *ExprStmt) HasSemicolon() bool { return s.Semicolon.Type == token.SEMICOLON }

// VarDecl 变量声明 var name: type = value;
type VarDecl struct {
	VarToken  token.Token
	Name      *Identifier
	Type      TypeNode
	Value     Expression
	Semicolon token.Token
}

func (s *VarDecl) Pos() token.Position { return s.VarToken.Pos }
func (s *VarDecl) End() token.Position { return s.Semicolon.Pos }
func (s *VarDecl) String() string {
	return "var " + s.Name.Name + ": " + s.Type.String() + " = " + s.Value.String() + ";"
}
func (s *VarDecl) stmtNode() {}

// ConstDecl 常量声明 const var name: type = value;
type ConstDecl struct {
	ConstToken token.Token
	Decl       *VarDecl
}

func (s *ConstDecl) Pos() token.Position { return s.ConstToken.Pos }
func (s *ConstDecl) End() token.Position { return s.Decl.End() }
func (s *ConstDecl) String() string      { return "const " + s.Decl.String() }
func (s *ConstDecl) stmtNode()           {}

// Parameter 函数参数 name: type
type Parameter struct {
	Name *Identifier
	Type TypeNode
}

func (p *Parameter) Pos() token.Position { return p.Name.Pos() }
func (p *Parameter) End() token.Position { return p.Type.End() }
func (p *Parameter) String() string      { return p.Name.Name + ": " + p.Type.String() }

// Block 花括号包围的语句列表
type Block struct {
	LBrace     token.Token
	Statements []Statement
	RBrace     token.Token
}

func (b *Block) Pos() token.Position { return b.LBrace.Pos }
func (b *Block) End() token.Position { return b.RBrace.Pos }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, stmt := range b.Statements {
		sb.WriteString(stmt.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// FnDecl 函数声明 fn name(params): type { ... }
type FnDecl struct {
	FnToken    token.Token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeNode
	Body       *Block
}

func (s *FnDecl) Pos() token.Position { return s.FnToken.Pos }
func (s *FnDecl) End() token.Position { return s.Body.End() }
func (s *FnDecl) String() string {
	return "fn " + s.Name.Name + "(" + joinParams(s.Parameters) + "): " +
		s.ReturnType.String() + " " + s.Body.String()
}
func (s *FnDecl) stmtNode() {}

// ConstructorDecl 构造函数声明 constructor(params) { ... }
type ConstructorDecl struct {
	CtorToken  token.Token
	Parameters []*Parameter
	Body       *Block
}

func (s *ConstructorDecl) Pos() token.Position { return s.CtorToken.Pos }
func (s *ConstructorDecl) End() token.Position { return s.Body.End() }
func (s *ConstructorDecl) String() string {
	return "constructor(" + joinParams(s.Parameters) + ") " + s.Body.String()
}
func (s *ConstructorDecl) stmtNode() {}

// ClassDecl 类声明 class Name { ... }
type ClassDecl struct {
	ClassToken token.Token
	Name       *Identifier
	Body       *Block
}

func (s *ClassDecl) Pos() token.Position { return s.ClassToken.Pos }
func (s *ClassDecl) End() token.Position { return s.Body.End() }
func (s *ClassDecl) String() string      { return "class " + s.Name.Name + " " + s.Body.String() }
func (s *ClassDecl) stmtNode()           {}

// ReturnStmt return 语句
type ReturnStmt struct {
	ReturnToken token.Token
	Value       Expression
	Semicolon   token.Token
}

func (s *ReturnStmt) Pos() token.Position { return s.ReturnToken.Pos }
func (s *ReturnStmt) End() token.Position { return s.Semicolon.Pos }
func (s *ReturnStmt) String() string      { return "return " + s.Value.String() + ";" }
func (s *ReturnStmt) stmtNode()           {}

// ============================================================================
// 辅助函数
// ============================================================================

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinParams(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// QuoteString 将字符串值还原为 wly 源码形式（双引号，使用 wly 支持的转义）
func QuoteString(s string) string {
	return `"` + escape(s, '"') + `"`
}

// QuoteChar 将字符值还原为 wly 源码形式
func QuoteChar(r rune) string {
	return "'" + escape(string(r), '\'') + "'"
}

func escape(s string, quote rune) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case quote:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
