// Package config 读取和生成 wly 项目配置文件 wly.toml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tangzhangming/wly/internal/i18n"
)

// 常量定义
const (
	ConfigFileName = "wly.toml" // 配置文件名
)

// Config 项目配置
type Config struct {
	Project     ProjectConfig     `toml:"project"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Dump        DumpConfig        `toml:"dump"`
	Format      FormatConfig      `toml:"format"`
}

// ProjectConfig 项目信息
type ProjectConfig struct {
	// Name 项目名
	Name string `toml:"name"`
}

// DiagnosticsConfig 诊断输出设置
type DiagnosticsConfig struct {
	// Lang 诊断语言：en 或 zh
	Lang string `toml:"lang"`

	// Color 是否使用颜色，未设置时按终端自动检测
	Color *bool `toml:"color,omitempty"`
}

// DumpConfig AST 转储设置
type DumpConfig struct {
	Indent    int  `toml:"indent"`
	Positions bool `toml:"positions"`
}

// FormatConfig 格式化设置
type FormatConfig struct {
	Indent int  `toml:"indent"`
	Tabs   bool `toml:"tabs"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{Lang: "en"},
		Dump:        DumpConfig{Indent: 2},
		Format:      FormatConfig{Indent: 4},
	}
}

// Load 从文件加载配置，未出现的字段保持默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 TOML 格式的配置内容
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if c.Diagnostics.Lang != "" {
		if _, ok := i18n.ParseLanguage(c.Diagnostics.Lang); !ok {
			return fmt.Errorf("diagnostics.lang: unsupported language %q", c.Diagnostics.Lang)
		}
	}
	if c.Dump.Indent < 0 {
		return fmt.Errorf("dump.indent: must not be negative, got %d", c.Dump.Indent)
	}
	if c.Format.Indent < 0 {
		return fmt.Errorf("format.indent: must not be negative, got %d", c.Format.Indent)
	}
	return nil
}

// LoadFor 查找并加载 path 所属项目的配置
//
// 找不到配置文件时返回默认配置和空路径。
func LoadFor(path string) (*Config, string, error) {
	configPath := FindConfigFile(path)
	if configPath == "" {
		return Default(), "", nil
	}
	cfg, err := Load(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, configPath, nil
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	content := generateConfigWithComments(c)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateConfigWithComments 生成带注释的配置文件内容
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("[project]\n")
	sb.WriteString(fmt.Sprintf("name = %q\n\n", c.Project.Name))

	sb.WriteString("[diagnostics]\n")
	sb.WriteString("# 诊断语言: en | zh\n")
	sb.WriteString(fmt.Sprintf("lang = %q\n", c.Diagnostics.Lang))
	if c.Diagnostics.Color != nil {
		sb.WriteString(fmt.Sprintf("color = %t\n", *c.Diagnostics.Color))
	} else {
		sb.WriteString("# color = true\n")
	}
	sb.WriteString("\n")

	sb.WriteString("[dump]\n")
	sb.WriteString(fmt.Sprintf("indent = %d\n", c.Dump.Indent))
	sb.WriteString(fmt.Sprintf("positions = %t\n\n", c.Dump.Positions))

	sb.WriteString("[format]\n")
	sb.WriteString(fmt.Sprintf("indent = %d\n", c.Format.Indent))
	sb.WriteString(fmt.Sprintf("tabs = %t\n", c.Format.Tabs))

	return sb.String()
}

// GenerateDefault 生成默认配置
// dir 是项目目录路径，用于生成默认的项目名
func GenerateDefault(dir string) *Config {
	cfg := Default()
	cfg.Project.Name = sanitizeName(filepath.Base(dir))
	return cfg
}

// sanitizeName 清理项目名
func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			result.WriteRune(r)
		}
	}

	s := strings.Trim(result.String(), ".")
	if s == "" {
		return "my-app"
	}
	return s
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	// 如果是文件，从其所在目录开始
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	var dir string
	if info.IsDir() {
		dir = startPath
	} else {
		dir = filepath.Dir(startPath)
	}

	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}

// GetProjectRoot 获取项目根目录（配置文件所在目录）
func GetProjectRoot(startPath string) string {
	configPath := FindConfigFile(startPath)
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}
