// repl.go - wly 交互式语法树浏览器
//
// 每次输入都会被解析，并按当前模式输出：
// - ast: 语法树转储（默认）
// - tokens: token 序列
// - fmt: 规范格式的源代码
//
// 输入在意外结束时（如未闭合的块）自动进入多行模式，空行强制提交。

package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tangzhangming/wly/internal/dumper"
	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/formatter"
	"github.com/tangzhangming/wly/internal/lexer"
	"github.com/tangzhangming/wly/internal/parser"
	"github.com/tangzhangming/wly/internal/token"
)

// replFile 交互输入使用的文件名
const replFile = "<repl>"

// Mode 输出模式
type Mode string

const (
	ModeAST    Mode = "ast"
	ModeTokens Mode = "tokens"
	ModeFormat Mode = "fmt"
)

// REPL 交互式语法树浏览器
type REPL struct {
	reader    *bufio.Reader
	writer    io.Writer
	history   []string
	multiline bool
	buffer    strings.Builder
	mode      Mode

	dumpOptions    *dumper.Options
	formatter      *errors.Formatter
	promptPrimary  string
	promptContinue string
}

// Config REPL 配置
type Config struct {
	PromptPrimary  string
	PromptContinue string
	Dump           *dumper.Options
	Colors         bool
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		PromptPrimary:  ">>> ",
		PromptContinue: "... ",
		Dump:           dumper.DefaultOptions(),
	}
}

// New 创建 REPL
func New(in io.Reader, out io.Writer, config Config) *REPL {
	if config.Dump == nil {
		config.Dump = dumper.DefaultOptions()
	}
	f := errors.NewFormatter()
	f.Colors = config.Colors

	return &REPL{
		reader:         bufio.NewReader(in),
		writer:         out,
		mode:           ModeAST,
		dumpOptions:    config.Dump,
		formatter:      f,
		promptPrimary:  config.PromptPrimary,
		promptContinue: config.PromptContinue,
	}
}

// Run 运行 REPL，直到输入结束或 :quit
func (r *REPL) Run() error {
	r.printWelcome()

	for {
		prompt := r.promptPrimary
		if r.multiline {
			prompt = r.promptContinue
		}
		fmt.Fprint(r.writer, prompt)

		line, err := r.reader.ReadString('\n')
		if err != nil && !(stderrors.Is(err, io.EOF) && line != "") {
			if stderrors.Is(err, io.EOF) {
				// 提交未完成的输入
				if r.multiline {
					fmt.Fprintln(r.writer)
					r.submit()
				}
				fmt.Fprintln(r.writer, "\nBye!")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")

		// 处理特殊命令
		if !r.multiline && strings.HasPrefix(line, ":") {
			if quit := r.handleCommand(line); quit {
				return nil
			}
			continue
		}

		if r.multiline && strings.TrimSpace(line) == "" {
			r.submit()
			continue
		}

		if r.multiline {
			r.buffer.WriteString("\n")
		}
		r.buffer.WriteString(line)

		if r.needsMoreInput(r.buffer.String()) {
			r.multiline = true
			continue
		}
		r.submit()
	}
}

// submit 处理缓冲区中的输入
func (r *REPL) submit() {
	input := r.buffer.String()
	r.buffer.Reset()
	r.multiline = false

	if strings.TrimSpace(input) == "" {
		return
	}

	r.addHistory(input)
	r.execute(input, replFile)
}

// printWelcome 打印欢迎信息
func (r *REPL) printWelcome() {
	fmt.Fprintln(r.writer, "wly syntax explorer")
	fmt.Fprintln(r.writer, "Type :help for help, :quit to exit")
	fmt.Fprintln(r.writer)
}

// handleCommand 处理特殊命令，返回是否退出
func (r *REPL) handleCommand(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()

	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.writer, "Bye!")
		return true

	case ":ast", ":tokens", ":fmt":
		r.mode = Mode(strings.TrimPrefix(cmd, ":"))
		fmt.Fprintf(r.writer, "Mode: %s\n", r.mode)

	case ":positions":
		r.dumpOptions.ShowPositions = !r.dumpOptions.ShowPositions
		fmt.Fprintf(r.writer, "Positions: %t\n", r.dumpOptions.ShowPositions)

	case ":load", ":l":
		if len(args) < 1 {
			fmt.Fprintln(r.writer, "Usage: :load <filename>")
			return false
		}
		r.loadFile(args[0])

	case ":history", ":hist":
		r.printHistory()

	default:
		fmt.Fprintf(r.writer, "Unknown command: %s\n", cmd)
		fmt.Fprintln(r.writer, "Type :help for available commands.")
	}
	return false
}

// printHelp 打印帮助信息
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  :help, :h, :?     Show this help message")
	fmt.Fprintln(r.writer, "  :quit, :q, :exit  Exit the explorer")
	fmt.Fprintln(r.writer, "  :ast              Print syntax trees (default)")
	fmt.Fprintln(r.writer, "  :tokens           Print token streams")
	fmt.Fprintln(r.writer, "  :fmt              Print formatted source")
	fmt.Fprintln(r.writer, "  :positions        Toggle line:column in syntax trees")
	fmt.Fprintln(r.writer, "  :load <file>      Process a source file")
	fmt.Fprintln(r.writer, "  :history, :hist   Show input history")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Multi-line input:")
	fmt.Fprintln(r.writer, "  Input that ends in the middle of a declaration")
	fmt.Fprintln(r.writer, "  continues on the next line; an empty line submits it.")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Examples:")
	fmt.Fprintln(r.writer, "  >>> 1 + 2 * 3;")
	fmt.Fprintln(r.writer, "  >>> fn add(a: int, b: int): int {")
	fmt.Fprintln(r.writer, "  ...   return a + b;")
	fmt.Fprintln(r.writer, "  ... }")
}

// loadFile 加载并处理文件
func (r *REPL) loadFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(r.writer, "Error loading file: %v\n", err)
		return
	}
	r.execute(string(source), filename)
}

// printHistory 打印历史记录
func (r *REPL) printHistory() {
	for i, cmd := range r.history {
		fmt.Fprintf(r.writer, "%4d  %s\n", i+1, cmd)
	}
}

// addHistory 添加到历史记录
func (r *REPL) addHistory(input string) {
	// 不添加重复的历史记录
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	// 限制历史记录大小
	if len(r.history) > 1000 {
		r.history = r.history[len(r.history)-1000:]
	}
}

// History 返回输入历史
func (r *REPL) History() []string {
	return r.history
}

// needsMoreInput 检查输入是否在声明或表达式中间结束
//
// tokens 模式逐行处理，不需要续行。
func (r *REPL) needsMoreInput(input string) bool {
	if r.mode == ModeTokens {
		return false
	}
	_, err := parser.ParseSource(input, replFile)
	var perr *parser.Error
	if !stderrors.As(err, &perr) {
		return false
	}
	return perr.Kind == parser.SyntaxError && perr.Found.Type == token.EOF
}

// execute 按当前模式处理输入
func (r *REPL) execute(input, filename string) {
	if r.mode == ModeTokens {
		tokens, lexErrs := lexer.Tokenize(input, filename)
		for _, tok := range tokens {
			fmt.Fprintf(r.writer, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		}
		for _, e := range lexErrs {
			r.report(errors.FromLexError(e), input)
		}
		return
	}

	stmts, err := parser.ParseSource(input, filename)
	if err != nil {
		r.report(errors.FromError(err, filename), input)
		return
	}

	if r.mode == ModeFormat {
		fmt.Fprint(r.writer, formatter.NewPrinter(formatter.DefaultOptions()).Print(stmts))
		return
	}
	fmt.Fprint(r.writer, dumper.New(r.dumpOptions).Dump(stmts))
}

func (r *REPL) report(ce *errors.CompileError, source string) {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	fmt.Fprint(r.writer, r.formatter.FormatCompileError(ce, lines))
}
