package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"scriptgen/internal/clipboard"
	"scriptgen/internal/runtime"
	"scriptgen/internal/view"
	"scriptgen/logger"

	"github.com/spf13/cobra"
)

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "生成一次脚本并输出到标准输出",
		Long:  "Generate a script from the prompt given as arguments, or from stdin when no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			// 日志写到 stderr，stdout 只输出脚本
			logger.SetDefault(logger.New(cmd.ErrOrStderr(), logger.WARN, logger.FormatText))
			svc, err := runtime.NewGenerator(runtime.Options{Config: cfg}, nil)
			if err != nil {
				return err
			}

			ws := view.NewWorkspace(svc)
			ws.SetPrompt(prompt)
			if !ws.CanSubmit() {
				return errors.New("prompt is required")
			}

			if err := ws.Submit(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ws.Snapshot().ErrorMessage)
				return err
			}

			code := ws.Snapshot().Code
			fmt.Fprint(cmd.OutOrStdout(), code)
			if !strings.HasSuffix(code, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}

			if copyToClipboard {
				button := view.NewCopyButton()
				if err := button.Copy(clipboard.NewOSC52(cmd.ErrOrStderr()), code); err != nil {
					return fmt.Errorf("复制到剪贴板失败: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), button.Label())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "通过 OSC 52 复制到终端剪贴板")
	return cmd
}

// readPrompt 参数优先，没有参数时读取 stdin
func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New("prompt is required")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("读取标准输入失败: %w", err)
	}
	return string(data), nil
}
