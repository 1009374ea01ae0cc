// Package i18n 提供 wly 工具链的诊断消息翻译
package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogues 每种语言的消息表，英文是完整的回退表
var catalogues = map[Language]map[string]string{
	LangEnglish: messagesEN,
	LangChinese: messagesZH,
}

var (
	currentLang = LangEnglish
	mu          sync.RWMutex
)

// ParseLanguage 解析语言代码
//
// 只看主语言部分并忽略大小写，所以 zh-CN、zh_TW、EN 都能识别。
func ParseLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_."); i >= 0 {
		code = code[:i]
	}
	lang := Language(code)
	if _, ok := catalogues[lang]; !ok {
		return LangEnglish, false
	}
	return lang, true
}

// SetLanguage 设置当前语言
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// SetLanguageFromString 按语言代码设置当前语言，无法识别时使用英文并返回 false
func SetLanguageFromString(code string) bool {
	lang, ok := ParseLanguage(code)
	SetLanguage(lang)
	return ok
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T 按当前语言返回消息，args 非空时作为格式化参数
//
// 当前语言缺少的消息回退到英文，两者都没有时返回 msgID 本身。
func T(msgID string, args ...interface{}) string {
	msg, ok := catalogues[GetLanguage()][msgID]
	if !ok {
		msg, ok = messagesEN[msgID]
	}
	if !ok {
		return msgID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
