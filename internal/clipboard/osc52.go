package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxOSC52Payload 多数终端对 OSC 52 负载的上限（编码后字节数）
const MaxOSC52Payload = 100000

var ErrPayloadTooLarge = errors.New("clipboard payload exceeds terminal limit")

// OSC52 通过终端转义序列写入系统剪贴板，SSH 会话中同样可用
type OSC52 struct {
	w    io.Writer
	tmux bool
}

// NewOSC52 写入 w；在 tmux 中运行时自动包一层 passthrough
func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{w: w, tmux: os.Getenv("TMUX") != ""}
}

// WriteText 实现 view.Clipboard
func (o *OSC52) WriteText(text string) error {
	seq, err := Sequence(text, o.tmux)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(o.w, seq); err != nil {
		return fmt.Errorf("写入剪贴板序列失败: %w", err)
	}
	return nil
}

// Sequence 构造 OSC 52 转义序列
func Sequence(text string, tmux bool) (string, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if len(encoded) > MaxOSC52Payload {
		return "", fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(encoded))
	}

	seq := "\x1b]52;c;" + encoded + "\x07"
	if tmux {
		return "\x1bPtmux;\x1b" + seq + "\x1b\\", nil
	}
	return seq, nil
}
