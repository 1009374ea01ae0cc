// Package lsp 实现 wly 语言服务器：文档同步、诊断、文档符号和格式化
package lsp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/atomic"

	"github.com/tangzhangming/wly/internal/logger"
)

// ServerName 在 initialize 响应中报告的服务器名称
const ServerName = "wly-language-server"

// Server LSP 服务器
type Server struct {
	// 文档管理
	documents *DocumentManager

	log     *logger.Logger
	version string

	// 连接
	conn   jsonrpc2.Conn
	client protocol.Client

	// 服务器状态
	initialized *atomic.Bool
	shutdown    *atomic.Bool
	exited      *atomic.Bool
}

// NewServer 创建 LSP 服务器
func NewServer(log *logger.Logger, version string) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		documents:   NewDocumentManager(),
		log:         log,
		version:     version,
		initialized: atomic.NewBool(false),
		shutdown:    atomic.NewBool(false),
		exited:      atomic.NewBool(false),
	}
}

// Documents 返回服务器的文档管理器
func (s *Server) Documents() *DocumentManager {
	return s.documents
}

// Run 在 rwc 上以 LSP 头部分帧的方式收发消息，直到连接关闭、收到 exit 通知或 ctx 结束
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.client = protocol.ClientDispatcher(s.conn, s.log.Zap())

	ctx = protocol.WithLogger(ctx, s.log.Zap())
	s.log.Info("wly language server %s started", s.version)
	s.conn.Go(ctx, protocol.Handlers(s.handle))

	select {
	case <-ctx.Done():
		_ = s.conn.Close()
		return ctx.Err()
	case <-s.conn.Done():
	}

	if s.exited.Load() {
		s.log.Info("server exited")
		return nil
	}

	err := s.conn.Err()
	if err == nil || stderrors.Is(err, io.EOF) {
		s.log.Info("client disconnected")
		return nil
	}
	return fmt.Errorf("lsp connection: %w", err)
}

// handle 按方法名分发请求和通知
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	method := req.Method()
	s.log.Debug("received %s", method)

	switch {
	case method == protocol.MethodExit:
		return s.handleExit(ctx, reply)
	case s.shutdown.Load():
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server is shutting down"))
	case method != protocol.MethodInitialize && !s.initialized.Load():
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ServerNotInitialized, "server not initialized"))
	}

	switch method {
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.shutdown.Store(true)
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.handleDidSave(ctx, reply, req)
	case protocol.MethodTextDocumentDocumentSymbol:
		return s.handleDocumentSymbol(ctx, reply, req)
	case protocol.MethodTextDocumentFormatting:
		return s.handleFormatting(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// ============================================================================
// 生命周期
// ============================================================================

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	if !s.initialized.CAS(false, true) {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server already initialized"))
	}
	if params.ClientInfo != nil {
		s.log.Info("client %s %s connected", params.ClientInfo.Name, params.ClientInfo.Version)
	}

	return reply(ctx, protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: true},
			},
			DocumentSymbolProvider:     true,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
	}, nil)
}

func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier) error {
	s.exited.Store(true)
	err := reply(ctx, nil, nil)
	_ = s.conn.Close()
	return err
}

// ============================================================================
// 文档同步
// ============================================================================

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	item := params.TextDocument
	doc := s.documents.Open(item.URI, item.Text, item.Version)
	s.publishDiagnostics(ctx, doc)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	// 全量同步：最后一次变更即完整内容
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.documents.Update(params.TextDocument.URI, text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	s.documents.Close(params.TextDocument.URI)

	// 清除已关闭文档的诊断
	if err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	}); err != nil {
		s.log.Error("clear diagnostics for %s: %v", params.TextDocument.URI, err)
	}
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	doc := s.documents.Get(params.TextDocument.URI)
	switch {
	case doc == nil && params.Text == "":
		return reply(ctx, nil, nil)
	case doc == nil:
		doc = s.documents.Open(params.TextDocument.URI, params.Text, 0)
	case params.Text != "" && params.Text != doc.Content:
		doc = s.documents.Update(doc.URI, params.Text, doc.Version)
	}

	s.publishDiagnostics(ctx, doc)
	return reply(ctx, nil, nil)
}

// publishDiagnostics 向客户端推送文档的诊断
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	diagnostics := Diagnostics(doc)
	s.log.Debug("publish %d diagnostic(s) for %s", len(diagnostics), doc.URI)

	params := &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diagnostics,
	}
	if doc.Version > 0 {
		params.Version = uint32(doc.Version)
	}

	if err := s.client.PublishDiagnostics(ctx, params); err != nil {
		s.log.Error("publish diagnostics for %s: %v", doc.URI, err)
	}
}

// ============================================================================
// 语言功能
// ============================================================================

func (s *Server) handleDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}
	return reply(ctx, DocumentSymbols(doc), nil)
}

func (s *Server) handleFormatting(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentFormattingParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return reply(ctx, []protocol.TextEdit{}, nil)
	}

	edits, err := formatEdits(doc, params.Options)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InternalError, err.Error()))
	}
	return reply(ctx, edits, nil)
}

func replyParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err))
}
