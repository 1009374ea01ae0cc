package main

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tangzhangming/wly/internal/errors"
	"github.com/tangzhangming/wly/internal/i18n"
	"github.com/tangzhangming/wly/internal/lexer"
	"github.com/tangzhangming/wly/internal/token"
)

func newTokensCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: i18n.T(i18n.CliTokensDesc),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", i18n.T(i18n.CliOptFormat))

	return cmd
}

func (a *app) runTokens(cmd *cobra.Command, path, format string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	tokens, lexErrs := lexer.Tokenize(source, path)
	a.log.Debug("%s: %d token(s), %d error(s)", path, len(tokens), len(lexErrs))

	if err := writeTokens(cmd.OutOrStdout(), tokens, format); err != nil {
		return err
	}

	if len(lexErrs) == 0 {
		return nil
	}
	r := a.reporter(cmd)
	r.SetSource(path, source)
	for _, e := range lexErrs {
		r.ReportError(errors.FromLexError(e))
	}
	return errReported
}

// writeTokens 按指定格式输出 token 序列
func writeTokens(w io.Writer, tokens []token.Token, format string) error {
	switch format {
	case "text":
		for _, tok := range tokens {
			fmt.Fprintln(w, formatToken(tok))
		}
		return nil

	case "json":
		if tokens == nil {
			tokens = []token.Token{}
		}
		data, err := json.MarshalIndent(tokens, "", "  ")
		if err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tokens); err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf(i18n.T(i18n.CliErrFormat), format)
	}
}

// formatToken 生成一行文本：位置、类型、原始文本，以及解码后的值
func formatToken(tok token.Token) string {
	pos := fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column)

	switch tok.Type {
	case token.ILLEGAL:
		return fmt.Sprintf("%-8s %-8s %q (%s)", pos, tok.Type, tok.Literal, tok.Message())
	case token.STRING:
		return fmt.Sprintf("%-8s %-8s %s %q", pos, tok.Type, tok.Literal, tok.Value)
	case token.CHAR:
		if r, ok := tok.Value.(rune); ok {
			return fmt.Sprintf("%-8s %-8s %s %q", pos, tok.Type, tok.Literal, r)
		}
	case token.INT, token.FLOAT:
		return fmt.Sprintf("%-8s %-8s %s %v", pos, tok.Type, tok.Literal, tok.Value)
	}
	return fmt.Sprintf("%-8s %-8s %s", pos, tok.Type, tok.Literal)
}
