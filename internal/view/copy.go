package view

import (
	"sync"
	"time"

	"scriptgen/config"
)

// Clipboard 剪贴板写入
type Clipboard interface {
	WriteText(text string) error
}

// ClipboardFunc 函数适配器
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error {
	return f(text)
}

type stopper interface {
	Stop() bool
}

// CopyButton 复制按钮：写入剪贴板后短暂显示已复制，延迟后恢复
type CopyButton struct {
	mu        sync.Mutex
	copied    bool
	delay     time.Duration
	pending   stopper
	seq       uint64
	afterFunc func(d time.Duration, f func()) stopper
}

func NewCopyButton() *CopyButton {
	return &CopyButton{
		delay: config.CopyResetDelay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Copy 把当前展示的代码原样写入剪贴板
// 写入失败时不进入已复制状态
func (b *CopyButton) Copy(clipboard Clipboard, code string) error {
	if err := clipboard.WriteText(code); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.copied = true
	b.seq++
	seq := b.seq
	if b.pending != nil {
		b.pending.Stop()
	}
	b.pending = b.afterFunc(b.delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// 被后一次复制取代的回调不生效
		if b.seq == seq {
			b.copied = false
			b.pending = nil
		}
	})
	return nil
}

// Copied 是否处于已复制提示状态
func (b *CopyButton) Copied() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copied
}

// Label 按钮文案
func (b *CopyButton) Label() string {
	if b.Copied() {
		return config.CopiedLabel
	}
	return config.CopyLabel
}
