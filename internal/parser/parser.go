package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tangzhangming/wly/internal/ast"
	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/lexer"
	"github.com/tangzhangming/wly/internal/token"
)

// ============================================================================
// Parser - 语法分析器
// ============================================================================
//
// 递归下降分析，表达式按优先级分层：
//
//	equality → additive → multiplicative → unary → postfix → primary
//
// 遇到第一个错误即停止，不做错误恢复。Parse 以 error 返回诊断信息，
// 内部通过 panic(bailout) 从深层递归中跳出。
//
// ============================================================================

// Parser 语法分析器
type Parser struct {
	tokens    []token.Token
	current   int
	filename  string
	exprDepth int    // 表达式解析深度，防止栈溢出
	lexErr    *Error // 词法阶段的第一个错误
}

// maxExprDepth 最大表达式嵌套深度，防止栈溢出
const maxExprDepth = 200

// ErrorKind 错误类别
type ErrorKind int

const (
	LexicalError ErrorKind = iota // 词法错误
	SyntaxError                   // 语法错误
)

func (k ErrorKind) String() string {
	if k == LexicalError {
		return i18n.T(i18n.ErrLexicalErrorPrefix)
	}
	return i18n.T(i18n.ErrSyntaxErrorPrefix)
}

// Error 语法分析错误
//
// 语法错误中 Expected 描述期望的内容，Found 是实际遇到的 token
// （输入结束时为 EOF）。词法错误中 Found 是 ILLEGAL token。
type Error struct {
	Kind     ErrorKind
	Pos      token.Position
	Expected string
	Found    token.Token
	Message  string

	// LexicalKind 仅对词法错误有意义
	LexicalKind lexer.ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// bailout 用于在发现错误后展开递归栈
type bailout struct {
	err *Error
}

// New 创建一个新的语法分析器，内部先完成词法分析
func New(source, filename string) *Parser {
	l := lexer.New(source, filename)
	return NewFromTokens(l.ScanTokens(), filename)
}

// NewFromTokens 基于已有的 token 序列创建语法分析器
//
// 序列中的第一个 ILLEGAL token 会在 Parse 时作为词法错误返回。
func NewFromTokens(tokens []token.Token, filename string) *Parser {
	p := &Parser{
		tokens:   tokens,
		filename: filename,
	}
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			p.lexErr = &Error{
				Kind:        LexicalError,
				Pos:         tok.Pos,
				Found:       tok,
				Message:     tok.Message(),
				LexicalKind: lexer.KindOf(tok),
			}
			break
		}
	}
	return p
}

// Parse 解析所有顶层语句
//
// 成功时返回语句列表；失败时返回 *Error，不返回部分结果。
func (p *Parser) Parse() (stmts []ast.Statement, err error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			stmts = nil
			err = b.err
		}
	}()

	for !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts, nil
}

// ParseSource 是 New(source, filename).Parse() 的简写
func ParseSource(source, filename string) ([]ast.Statement, error) {
	return New(source, filename).Parse()
}

// ============================================================================
// 辅助方法
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == token.EOF
}

// peek 返回当前 token；越过序列末尾时返回合成的 EOF token
func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume 消费一个指定类型的 token，否则报告语法错误
func (p *Parser) consume(t token.TokenType) token.Token {
	if p.check(t) {
		return p.advance()
	}
	expected := quote(t)
	p.errorAtCurrent(expected, i18n.T(i18n.ErrExpectedToken, expected, describe(p.peek())))
	return token.Token{}
}

func (p *Parser) consumeIdent() *ast.Identifier {
	if p.check(token.IDENT) {
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
	p.errorAtCurrent("identifier", i18n.T(i18n.ErrExpectedIdentifier, describe(p.peek())))
	return nil
}

// errorAtCurrent 在当前 token 处报告错误并终止分析
//
// 已到达输入结束时，消息统一为"意外的输入结束"。
func (p *Parser) errorAtCurrent(expected, message string) {
	tok := p.peek()
	if tok.Type == token.EOF {
		message = i18n.T(i18n.ErrUnexpectedEOF, expected)
	}
	panic(bailout{&Error{
		Kind:     SyntaxError,
		Pos:      tok.Pos,
		Expected: expected,
		Found:    tok,
		Message:  message,
	}})
}

// eof 合成一个位于最后一个 token 之后的 EOF token
func (p *Parser) eof() token.Token {
	pos := token.Position{Filename: p.filename, Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		pos = last.Pos
		pos.Offset += len(last.Literal)
		if i := strings.LastIndexByte(last.Literal, '\n'); i >= 0 {
			pos.Line += strings.Count(last.Literal, "\n")
			pos.Column = utf8.RuneCountInString(last.Literal[i+1:]) + 1
		} else {
			pos.Column += utf8.RuneCountInString(last.Literal)
		}
	}
	return token.Token{Type: token.EOF, Pos: pos}
}

// quote 返回 token 类型用于错误信息的形式
func quote(t token.TokenType) string {
	return "'" + t.String() + "'"
}

// describe 返回实际遇到的 token 在错误信息中的描述
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.CHAR:
		return fmt.Sprintf("%s %s", tok.Type, tok.Literal)
	}
	return quote(tok.Type)
}

// ============================================================================
// 语句解析
// ============================================================================

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.FN:
		return p.parseFnDecl()
	case token.CONSTRUCTOR:
		return p.parseConstructorDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl var name: type = value;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{VarToken: p.consume(token.VAR)}
	decl.Name = p.consumeIdent()
	p.consume(token.COLON)
	decl.Type = p.parseType()
	p.consume(token.ASSIGN)
	decl.Value = p.parseExpression()
	decl.Semicolon = p.consume(token.SEMICOLON)
	return decl
}

// parseConstDecl const var name: type = value;
func (p *Parser) parseConstDecl() *ast.ConstDecl {
	constTok := p.advance()
	return &ast.ConstDecl{
		ConstToken: constTok,
		Decl:       p.parseVarDecl(),
	}
}

// parseFnDecl fn name(params): type { ... }
func (p *Parser) parseFnDecl() *ast.FnDecl {
	decl := &ast.FnDecl{FnToken: p.advance()}
	decl.Name = p.consumeIdent()
	decl.Parameters = p.parseParameters()
	p.consume(token.COLON)
	decl.ReturnType = p.parseType()
	decl.Body = p.parseBlock()
	return decl
}

// parseConstructorDecl constructor(params) { ... }
func (p *Parser) parseConstructorDecl() *ast.ConstructorDecl {
	decl := &ast.ConstructorDecl{CtorToken: p.advance()}
	decl.Parameters = p.parseParameters()
	decl.Body = p.parseBlock()
	return decl
}

// parseClassDecl class Name { ... }
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	decl := &ast.ClassDecl{ClassToken: p.advance()}
	decl.Name = p.consumeIdent()
	decl.Body = p.parseBlock()
	return decl
}

// parseReturnStmt return value;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{ReturnToken: p.advance()}
	stmt.Value = p.parseExpression()
	stmt.Semicolon = p.consume(token.SEMICOLON)
	return stmt
}

// parseExprStmt 表达式语句，末尾的分号可选
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	stmt := &ast.ExprStmt{Expr: p.parseExpression()}
	if p.check(token.SEMICOLON) {
		stmt.Semicolon = p.advance()
	}
	return stmt
}

// parseParameters ( name: type, ... )
func (p *Parser) parseParameters() []*ast.Parameter {
	p.consume(token.LPAREN)

	var params []*ast.Parameter
	if !p.check(token.RPAREN) {
		for {
			param := &ast.Parameter{Name: p.consumeIdent()}
			p.consume(token.COLON)
			param.Type = p.parseType()
			params = append(params, param)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.RPAREN)
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{LBrace: p.consume(token.LBRACE)}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	block.RBrace = p.consume(token.RBRACE)
	return block
}

// ============================================================================
// 类型解析
// ============================================================================

func (p *Parser) parseType() ast.TypeNode {
	tok := p.peek()
	switch tok.Type {
	case token.ARRAY:
		t := &ast.ArrayType{ArrayToken: p.advance()}
		t.LAngle = p.consume(token.LT)
		t.ElementType = p.parseType()
		t.RAngle = p.consume(token.GT)
		return t

	case token.MAP:
		t := &ast.MapType{MapToken: p.advance()}
		t.LBrace = p.consume(token.LBRACE)
		t.KeyType = p.parseType()
		p.consume(token.COLON)
		t.ValueType = p.parseType()
		t.RBrace = p.consume(token.RBRACE)
		return t

	case token.STRING_TYPE, token.CHAR_TYPE, token.INT_TYPE, token.FLOAT_TYPE, token.BOOL_TYPE:
		p.advance()
		return &ast.SimpleType{Token: tok, Name: tok.Type.String()}
	}

	p.errorAtCurrent("type", i18n.T(i18n.ErrExpectedType, describe(tok)))
	return nil
}

// ============================================================================
// 表达式解析
// ============================================================================

// 运算符优先级（从低到高）
const (
	PREC_NONE     = iota
	PREC_EQUALITY // ==, !=
	PREC_TERM     // +, -
	PREC_FACTOR   // *, /
	PREC_UNARY    // !, -
	PREC_POSTFIX  // [], .
)

func (p *Parser) getPrecedence(t token.TokenType) int {
	switch t {
	case token.EQ, token.NE:
		return PREC_EQUALITY
	case token.PLUS, token.MINUS:
		return PREC_TERM
	case token.STAR, token.SLASH:
		return PREC_FACTOR
	default:
		return PREC_NONE
	}
}

// enter/leave 维护递归深度
func (p *Parser) enter() {
	p.exprDepth++
	if p.exprDepth > maxExprDepth {
		p.errorAtCurrent("expression", i18n.T(i18n.ErrExprTooDeep))
	}
}

func (p *Parser) leave() {
	p.exprDepth--
}

func (p *Parser) parseExpression() ast.Expression {
	p.enter()
	defer p.leave()

	return p.parsePrecedence(PREC_EQUALITY)
}

// parsePrecedence 解析优先级不低于 precedence 的二元表达式，左结合
func (p *Parser) parsePrecedence(precedence int) ast.Expression {
	left := p.parseUnary()

	for !p.isAtEnd() {
		prec := p.getPrecedence(p.peek().Type)
		if prec == PREC_NONE || prec < precedence {
			break
		}
		op := p.advance()
		right := p.parsePrecedence(prec + 1)
		left = &ast.BinaryExpr{
			Left:     left,
			Operator: op,
			Right:    right,
		}
	}

	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.NOT) || p.check(token.MINUS) {
		p.enter()
		defer p.leave()

		op := p.advance()
		return &ast.UnaryExpr{
			Operator: op,
			Operand:  p.parseUnary(),
		}
	}
	return p.parsePostfix()
}

// parsePostfix 解析索引、切片和成员访问
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(token.LBRACKET):
			lbracket := p.advance()
			index := p.parseExpression()
			if p.check(token.COLON) {
				colon := p.advance()
				high := p.parseExpression()
				expr = &ast.SliceExpr{
					Target:   expr,
					LBracket: lbracket,
					Low:      index,
					Colon:    colon,
					High:     high,
					RBracket: p.consume(token.RBRACKET),
				}
				continue
			}
			expr = &ast.IndexExpr{
				Target:   expr,
				LBracket: lbracket,
				Index:    index,
				RBracket: p.consume(token.RBRACKET),
			}

		case p.check(token.DOT):
			dot := p.advance()
			expr = &ast.MemberExpr{
				Target: expr,
				Dot:    dot,
				Name:   p.consumeIdent(),
			}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Type {
	case token.IDENT:
		p.advance()
		if p.check(token.LPAREN) {
			return p.parseCall(&ast.Identifier{Token: tok, Name: tok.Literal})
		}
		return &ast.Variable{Token: tok, Name: tok.Literal}

	case token.INT:
		p.advance()
		return &ast.IntegerLiteral{Token: tok, Value: intValue(tok)}

	case token.FLOAT:
		p.advance()
		return &ast.FloatLiteral{Token: tok, Value: floatValue(tok)}

	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: stringValue(tok)}

	case token.CHAR:
		p.advance()
		return &ast.CharLiteral{Token: tok, Value: charValue(tok)}

	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}

	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}

	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		return &ast.ParenExpr{
			LParen: tok,
			Inner:  inner,
			RParen: p.consume(token.RPAREN),
		}

	case token.LBRACKET:
		return p.parseArrayLiteral()

	case token.LBRACE:
		return p.parseMapLiteral()
	}

	p.errorAtCurrent("expression", i18n.T(i18n.ErrExpectedPrimary, describe(tok)))
	return nil
}

// parseCall name(args)
func (p *Parser) parseCall(callee *ast.Identifier) *ast.CallExpr {
	call := &ast.CallExpr{
		Callee: callee,
		LParen: p.advance(),
	}

	if !p.check(token.RPAREN) {
		for {
			call.Arguments = append(call.Arguments, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	call.RParen = p.consume(token.RPAREN)
	return call
}

// parseArrayLiteral [a, b, c]
func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	lit := &ast.ArrayLiteral{LBracket: p.advance()}

	if !p.check(token.RBRACKET) {
		for {
			lit.Elements = append(lit.Elements, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	lit.RBracket = p.consume(token.RBRACKET)
	return lit
}

// parseMapLiteral {k: v, ...}
func (p *Parser) parseMapLiteral() *ast.MapLiteral {
	lit := &ast.MapLiteral{LBrace: p.advance()}

	if !p.check(token.RBRACE) {
		for {
			key := p.parseExpression()
			colon := p.consume(token.COLON)
			value := p.parseExpression()
			lit.Pairs = append(lit.Pairs, ast.MapPair{Key: key, Colon: colon, Value: value})
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	lit.RBrace = p.consume(token.RBRACE)
	return lit
}

// ============================================================================
// 字面量取值
// ============================================================================
//
// 由本包的词法分析器产生的 token 总带有 Value；外部构造的 token 可能只有
// Literal，此时退回到解析原始文本。

func intValue(tok token.Token) int64 {
	if v, ok := tok.Value.(int64); ok {
		return v
	}
	v, _ := strconv.ParseInt(tok.Literal, 10, 64)
	return v
}

func floatValue(tok token.Token) float64 {
	if v, ok := tok.Value.(float64); ok {
		return v
	}
	v, _ := strconv.ParseFloat(tok.Literal, 64)
	return v
}

func stringValue(tok token.Token) string {
	if v, ok := tok.Value.(string); ok {
		return v
	}
	return strings.Trim(tok.Literal, `"`)
}

func charValue(tok token.Token) rune {
	if v, ok := tok.Value.(rune); ok {
		return v
	}
	r, _ := utf8.DecodeRuneInString(strings.Trim(tok.Literal, "'"))
	return r
}
