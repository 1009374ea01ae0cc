// Package errors 提供 wly 工具链的诊断信息：错误码、源码上下文格式化和报告
package errors

import "github.com/tangzhangming/wly/internal/i18n"

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
	LevelHelp                 // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 错误码
// ============================================================================

const (
	E0001 = "E0001" // 语法错误（其他）
	E0002 = "E0002" // 非法字符
	E0003 = "E0003" // 非法转义序列
	E0004 = "E0004" // 无效的字符字面量
	E0005 = "E0005" // 意外的输入结束
	E0006 = "E0006" // 缺少期望的 token
	E0007 = "E0007" // 意外的 token
)

// ErrorInfo 错误码信息
type ErrorInfo struct {
	Code     string // 错误码
	Level    Level  // 错误级别
	HintID   string // 修复建议的 i18n 消息 ID，可为空
	Category string // 错误分类
}

var errorInfos = map[string]ErrorInfo{
	E0001: {E0001, LevelError, "", "syntax"},
	E0002: {E0002, LevelError, "", "lexical"},
	E0003: {E0003, LevelError, i18n.HintEscapes, "lexical"},
	E0004: {E0004, LevelError, i18n.HintCharLiteral, "lexical"},
	E0005: {E0005, LevelError, i18n.HintUnexpectedEOF, "syntax"},
	E0006: {E0006, LevelError, "", "syntax"},
	E0007: {E0007, LevelError, "", "syntax"},
}

// GetErrorInfo 获取错误码信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := errorInfos[code]
	return info, ok
}

// IsKnownCode 检查错误码是否已定义
func IsKnownCode(code string) bool {
	_, ok := errorInfos[code]
	return ok
}

// Hint 返回错误码对应的修复建议，没有时返回空字符串
func Hint(code string) string {
	info, ok := errorInfos[code]
	if !ok || info.HintID == "" {
		return ""
	}
	return i18n.T(info.HintID)
}
