package ast

// Visitor 访问者函数类型，返回 false 时不再进入子节点
type Visitor func(node Node) bool

// Walk 按源码顺序深度优先遍历 AST 节点
func Walk(node Node, visitor Visitor) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	switch n := node.(type) {
	// 类型
	case *ArrayType:
		Walk(n.ElementType, visitor)
	case *MapType:
		Walk(n.KeyType, visitor)
		Walk(n.ValueType, visitor)

	// 表达式
	case *ArrayLiteral:
		for _, e := range n.Elements {
			Walk(e, visitor)
		}
	case *MapLiteral:
		for _, pair := range n.Pairs {
			Walk(pair.Key, visitor)
			Walk(pair.Value, visitor)
		}
	case *BinaryExpr:
		Walk(n.Left, visitor)
		Walk(n.Right, visitor)
	case *UnaryExpr:
		Walk(n.Operand, visitor)
	case *ParenExpr:
		Walk(n.Inner, visitor)
	case *CallExpr:
		Walk(n.Callee, visitor)
		for _, arg := range n.Arguments {
			Walk(arg, visitor)
		}
	case *IndexExpr:
		Walk(n.Target, visitor)
		Walk(n.Index, visitor)
	case *SliceExpr:
		Walk(n.Target, visitor)
		Walk(n.Low, visitor)
		Walk(n.High, visitor)
	case *MemberExpr:
		Walk(n.Target, visitor)
		Walk(n.Name, visitor)

	// 语句
	case *ExprStmt:
		Walk(n.Expr, visitor)
	case *VarDecl:
		Walk(n.Name, visitor)
		Walk(n.Type, visitor)
		Walk(n.Value, visitor)
	case *ConstDecl:
		Walk(n.Decl, visitor)
	case *Parameter:
		Walk(n.Name, visitor)
		Walk(n.Type, visitor)
	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, visitor)
		}
	case *FnDecl:
		Walk(n.Name, visitor)
		for _, param := range n.Parameters {
			Walk(param, visitor)
		}
		Walk(n.ReturnType, visitor)
		Walk(n.Body, visitor)
	case *ConstructorDecl:
		for _, param := range n.Parameters {
			Walk(param, visitor)
		}
		Walk(n.Body, visitor)
	case *ClassDecl:
		Walk(n.Name, visitor)
		Walk(n.Body, visitor)
	case *ReturnStmt:
		Walk(n.Value, visitor)
	}
}
