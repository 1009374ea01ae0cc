package main

import (
	"os"
	"strings"

	"github.com/tangzhangming/wly/internal/i18n"
)

// Version 工具链版本
const Version = "0.1.0"

func main() {
	// 帮助文本在构建命令时生成，需要先确定语言
	if lang := scanLang(os.Args[1:]); lang != "" {
		i18n.SetLanguageFromString(lang)
	}

	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// scanLang 预扫描全局参数 --lang
func scanLang(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--lang" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--lang="):
			return strings.TrimPrefix(arg, "--lang=")
		case arg == "--":
			return ""
		}
	}
	return ""
}
