package lsp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const testURI = uri.URI("file:///tmp/test.wly")

// ============================================================================
// Document Manager Tests
// ============================================================================

func TestDocumentManager(t *testing.T) {
	dm := NewDocumentManager()

	doc := dm.Open(testURI, "var x: int = 1;\r\nvar y: int = 2;", 1)
	if doc.Err != nil {
		t.Fatalf("unexpected error: %v", doc.Err)
	}
	if len(doc.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(doc.Statements))
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != "var x: int = 1;" {
		t.Errorf("lines got %q", doc.Lines)
	}

	if dm.Get(testURI) != doc {
		t.Error("Get returned a different document")
	}

	updated := dm.Update(testURI, "var x: int = ;", 2)
	if updated.Err == nil || updated.Statements != nil {
		t.Error("expected parse error after update")
	}
	if updated.Version != 2 || dm.Get(testURI) != updated {
		t.Error("update not stored")
	}
	if doc.Err != nil {
		t.Error("old snapshot was modified")
	}

	dm.Close(testURI)
	if dm.Get(testURI) != nil || dm.Len() != 0 {
		t.Error("document still open after Close")
	}
}

func TestURIToPath(t *testing.T) {
	if got := uriToPath(testURI); got != "/tmp/test.wly" {
		t.Errorf("file URI got %q", got)
	}
	if got := uriToPath("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Errorf("untitled URI got %q", got)
	}
}

// ============================================================================
// Diagnostics Tests
// ============================================================================

func TestDiagnostics(t *testing.T) {
	dm := NewDocumentManager()

	ok := dm.Open(testURI, "var x: int = 1;", 1)
	diags := Diagnostics(ok)
	if diags == nil || len(diags) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", diags)
	}

	bad := dm.Open(testURI, "var x: int = 1;\nvar y: int = ;", 1)
	diags = Diagnostics(bad)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	d := diags[0]
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 13},
		End:   protocol.Position{Line: 1, Character: 14},
	}
	if d.Range != want {
		t.Errorf("range got %+v, want %+v", d.Range, want)
	}
	if d.Code != "E0007" || d.Source != "wly" || d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("diagnostic got %+v", d)
	}
}

func TestDiagnosticsUTF16(t *testing.T) {
	doc := NewDocumentManager().Open(testURI, `var s: string = "😀" + ;`, 1)
	diags := Diagnostics(doc)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	// ';' 是第 23 个字符，前面的 emoji 占两个 UTF-16 码元
	if got := diags[0].Range.Start.Character; got != 23 {
		t.Errorf("start character got %d, want 23", got)
	}
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   uint32
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"名字x", 3, 2},
		{"😀x", 2, 2},
		{"ab", 5, 4},
		{"", 3, 2},
	}

	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.column); got != tt.want {
			t.Errorf("utf16Column(%q, %d) = %d, want %d", tt.line, tt.column, got, tt.want)
		}
	}
}

// ============================================================================
// Symbols Tests
// ============================================================================

func TestDocumentSymbols(t *testing.T) {
	source := `const var max: int = 10;
var names: array<string> = [];
fn add(a: int, b: int): int {
    return a + b;
}
class Point {
    var x: int = 0;
    constructor(x: int) {
        init(x);
    }
    fn get(): int {
        var y: int = x;
        return y;
    }
}
print(add(1, 2));
`
	doc := NewDocumentManager().Open(testURI, source, 1)
	if doc.Err != nil {
		t.Fatalf("parse error: %v", doc.Err)
	}

	symbols := DocumentSymbols(doc)

	expected := []struct {
		name   string
		kind   protocol.SymbolKind
		detail string
	}{
		{"max", protocol.SymbolKindConstant, "int"},
		{"names", protocol.SymbolKindVariable, "array<string>"},
		{"add", protocol.SymbolKindFunction, "(a: int, b: int): int"},
		{"Point", protocol.SymbolKindClass, ""},
	}
	if len(symbols) != len(expected) {
		t.Fatalf("expected %d symbols, got %d", len(expected), len(symbols))
	}
	for i, exp := range expected {
		sym := symbols[i]
		if sym.Name != exp.name || sym.Kind != exp.kind || sym.Detail != exp.detail {
			t.Errorf("symbol %d: got %s/%v/%q, want %s/%v/%q",
				i, sym.Name, sym.Kind, sym.Detail, exp.name, exp.kind, exp.detail)
		}
	}

	add := symbols[2]
	if add.Range.Start != (protocol.Position{Line: 2, Character: 0}) ||
		add.Range.End != (protocol.Position{Line: 4, Character: 1}) {
		t.Errorf("add range got %+v", add.Range)
	}
	if add.SelectionRange.Start.Character != 3 || add.SelectionRange.End.Character != 6 {
		t.Errorf("add selection range got %+v", add.SelectionRange)
	}

	children := symbols[3].Children
	kinds := []protocol.SymbolKind{
		protocol.SymbolKindField,
		protocol.SymbolKindConstructor,
		protocol.SymbolKindMethod,
	}
	// 方法体内的局部变量不是类成员
	if len(children) != len(kinds) {
		t.Fatalf("expected %d class members, got %d", len(kinds), len(children))
	}
	for i, kind := range kinds {
		if children[i].Kind != kind {
			t.Errorf("member %d kind got %v, want %v", i, children[i].Kind, kind)
		}
	}
	if children[1].Name != "constructor" || children[1].Detail != "(x: int)" {
		t.Errorf("constructor symbol got %+v", children[1])
	}
}

func TestDocumentSymbolsWithError(t *testing.T) {
	doc := NewDocumentManager().Open(testURI, "fn f(", 1)
	if symbols := DocumentSymbols(doc); len(symbols) != 0 {
		t.Errorf("expected no symbols, got %d", len(symbols))
	}
}

// ============================================================================
// Formatting Tests
// ============================================================================

func TestFormatEdits(t *testing.T) {
	doc := NewDocumentManager().Open(testURI, "var   x:int=5;\nfn f():int{return x;}", 1)

	edits, err := formatEdits(doc, protocol.FormattingOptions{TabSize: 2, InsertSpaces: true})
	if err != nil {
		t.Fatalf("formatEdits failed: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}

	want := "var x: int = 5;\n\nfn f(): int {\n  return x;\n}\n"
	if edits[0].NewText != want {
		t.Errorf("formatted text got %q, want %q", edits[0].NewText, want)
	}
	if edits[0].Range.End != (protocol.Position{Line: 1, Character: 21}) {
		t.Errorf("edit range got %+v", edits[0].Range)
	}

	formatted := NewDocumentManager().Open(testURI, want, 1)
	edits, err = formatEdits(formatted, protocol.FormattingOptions{TabSize: 2, InsertSpaces: true})
	if err != nil || len(edits) != 0 {
		t.Errorf("formatted document should need no edits, got %v %v", edits, err)
	}

	broken := NewDocumentManager().Open(testURI, "var x", 1)
	edits, err = formatEdits(broken, protocol.FormattingOptions{})
	if err != nil || len(edits) != 0 {
		t.Errorf("document with errors should not be formatted, got %v %v", edits, err)
	}
}

// ============================================================================
// Server Tests
// ============================================================================

type testClient struct {
	conn        jsonrpc2.Conn
	diagnostics chan protocol.PublishDiagnosticsParams
	done        chan error
}

func startServer(t *testing.T) *testClient {
	t.Helper()

	serverEnd, clientEnd := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c := &testClient{
		diagnostics: make(chan protocol.PublishDiagnosticsParams, 16),
		done:        make(chan error, 1),
	}

	srv := NewServer(nil, "test")
	go func() { c.done <- srv.Run(ctx, serverEnd) }()

	c.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(clientEnd))
	c.conn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() == protocol.MethodTextDocumentPublishDiagnostics {
			var params protocol.PublishDiagnosticsParams
			if err := json.Unmarshal(req.Params(), &params); err == nil {
				c.diagnostics <- params
			}
		}
		return reply(ctx, nil, nil)
	})
	t.Cleanup(func() { _ = c.conn.Close() })

	return c
}

func (c *testClient) nextDiagnostics(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-c.diagnostics:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
	}
	return protocol.PublishDiagnosticsParams{}
}

func TestServerSession(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	// initialize 之前的请求被拒绝
	var symbols []protocol.DocumentSymbol
	params := &protocol.DocumentSymbolParams{TextDocument: protocol.TextDocumentIdentifier{URI: testURI}}
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &symbols); err == nil {
		t.Fatal("expected error before initialize")
	}

	var result protocol.InitializeResult
	if _, err := c.conn.Call(ctx, protocol.MethodInitialize, &protocol.InitializeParams{}, &result); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != ServerName || result.ServerInfo.Version != "test" {
		t.Errorf("server info got %+v", result.ServerInfo)
	}
	if _, err := c.conn.Call(ctx, protocol.MethodInitialize, &protocol.InitializeParams{}, nil); err == nil {
		t.Error("second initialize should fail")
	}
	if err := c.conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		t.Fatal(err)
	}

	// 打开有语法错误的文档
	if err := c.conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "wly", Version: 1, Text: "var x: int = 1"},
	}); err != nil {
		t.Fatal(err)
	}
	diags := c.nextDiagnostics(t)
	if diags.URI != testURI || len(diags.Diagnostics) != 1 || diags.Diagnostics[0].Code != "E0005" {
		t.Fatalf("diagnostics after open got %+v", diags)
	}

	// 修复后诊断被清空
	if err := c.conn.Notify(ctx, protocol.MethodTextDocumentDidChange, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI}, Version: 2},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "class A { fn f(): int { return 1; } }"}},
	}); err != nil {
		t.Fatal(err)
	}
	diags = c.nextDiagnostics(t)
	if len(diags.Diagnostics) != 0 || diags.Version != 2 {
		t.Fatalf("diagnostics after change got %+v", diags)
	}

	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &symbols); err != nil {
		t.Fatalf("documentSymbol failed: %v", err)
	}
	if len(symbols) != 1 || symbols[0].Name != "A" || len(symbols[0].Children) != 1 {
		t.Errorf("symbols got %+v", symbols)
	}

	var edits []protocol.TextEdit
	formatting := &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      protocol.FormattingOptions{TabSize: 4, InsertSpaces: true},
	}
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentFormatting, formatting, &edits); err != nil {
		t.Fatalf("formatting failed: %v", err)
	}
	if len(edits) != 1 || edits[0].NewText != "class A {\n    fn f(): int {\n        return 1;\n    }\n}\n" {
		t.Errorf("edits got %+v", edits)
	}

	if _, err := c.conn.Call(ctx, "textDocument/unknown", nil, nil); err == nil {
		t.Error("unknown method should fail")
	}

	// 关闭文档时清除诊断
	if err := c.conn.Notify(ctx, protocol.MethodTextDocumentDidClose, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}); err != nil {
		t.Fatal(err)
	}
	if diags = c.nextDiagnostics(t); len(diags.Diagnostics) != 0 {
		t.Errorf("diagnostics after close got %+v", diags)
	}

	if _, err := c.conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &symbols); err == nil {
		t.Error("requests after shutdown should fail")
	}
	if err := c.conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-c.done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not exit")
	}
}
