package lsp

import (
	"strings"
	"sync"

	"go.lsp.dev/uri"

	"github.com/tangzhangming/wly/internal/ast"
	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/parser"
)

// Document 表示一个打开的文档
type Document struct {
	URI     uri.URI
	Version int32
	Content string
	Lines   []string // 按行分割的内容

	// 解析结果：成功时 Statements 有效，失败时 Err 为唯一的诊断
	Statements []ast.Statement
	Err        *errors.CompileError
}

func newDocument(u uri.URI, content string, version int32) *Document {
	doc := &Document{URI: u, Version: version}
	doc.setContent(content)
	return doc
}

// setContent 替换文档内容并重新解析
func (d *Document) setContent(content string) {
	d.Content = content
	d.Lines = splitLines(content)
	d.Statements = nil
	d.Err = nil

	filename := uriToPath(d.URI)
	stmts, err := parser.ParseSource(content, filename)
	if err != nil {
		d.Err = errors.FromError(err, filename)
		return
	}
	d.Statements = stmts
}

// DocumentManager 文档管理器
type DocumentManager struct {
	documents map[uri.URI]*Document
	mu        sync.RWMutex
}

// NewDocumentManager 创建文档管理器
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[uri.URI]*Document),
	}
}

// Open 打开文档
func (dm *DocumentManager) Open(u uri.URI, content string, version int32) *Document {
	doc := newDocument(u, content, version)

	dm.mu.Lock()
	dm.documents[u] = doc
	dm.mu.Unlock()

	return doc
}

// Update 以全文替换的方式更新文档，未打开的文档会被打开
func (dm *DocumentManager) Update(u uri.URI, content string, version int32) *Document {
	// 每次更新都生成新的 Document，已交给其他请求的旧快照保持不变
	return dm.Open(u, content, version)
}

// Close 关闭文档
func (dm *DocumentManager) Close(u uri.URI) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.documents, u)
}

// Get 获取文档，不存在时返回 nil
func (dm *DocumentManager) Get(u uri.URI) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[u]
}

// Len 返回打开的文档数量
func (dm *DocumentManager) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

// splitLines 按行分割内容，兼容 \r\n
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}

// uriToPath 将 file:// URI 转换为文件路径，其他 scheme 原样返回
func uriToPath(u uri.URI) string {
	if strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return u.Filename()
	}
	return string(u)
}
