package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"scriptgen/config"
	"scriptgen/internal/generator"
)

// ErrBusy 已有请求在进行中
var ErrBusy = errors.New("a generation request is already in flight")

// Submitter 执行一次生成请求
type Submitter interface {
	Submit(ctx context.Context, prompt string) (string, error)
}

// Snapshot 某一时刻的界面状态
type Snapshot struct {
	Prompt       string
	Status       Status
	Code         string
	ErrorMessage string
}

// CanSubmit 提示词非空且没有请求在进行中
func (s Snapshot) CanSubmit() bool {
	return s.Status != StatusGenerating && strings.TrimSpace(s.Prompt) != ""
}

// IsGenerating 是否在等待上游
func (s Snapshot) IsGenerating() bool {
	return s.Status == StatusGenerating
}

// ShowsOutput 有代码时展示输出面板，否则展示占位
func (s Snapshot) ShowsOutput() bool {
	return s.Code != ""
}

// ShowsError 只有失败状态展示错误
func (s Snapshot) ShowsError() bool {
	return s.Status == StatusError
}

// ButtonLabel 提交按钮文案
func (s Snapshot) ButtonLabel() string {
	if s.IsGenerating() {
		return "Thinking..."
	}
	return "Generate Script"
}

// Workspace 单会话、单槽位的界面状态
type Workspace struct {
	mu        sync.Mutex
	submitter Submitter
	state     Snapshot
	observers []func(Snapshot)
}

func NewWorkspace(submitter Submitter) *Workspace {
	return &Workspace{
		submitter: submitter,
		state:     Snapshot{Status: StatusIdle},
	}
}

// OnChange 注册状态变化回调，回调在锁外执行
func (w *Workspace) OnChange(fn func(Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

// SetPrompt 更新提示词，不影响其他状态
func (w *Workspace) SetPrompt(prompt string) {
	w.mu.Lock()
	w.state.Prompt = prompt
	w.mu.Unlock()
}

// CanSubmit 见 Snapshot.CanSubmit
func (w *Workspace) CanSubmit() bool {
	return w.Snapshot().CanSubmit()
}

// Snapshot 当前状态副本
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit 提交当前提示词
// 空提示词直接返回 generator.ErrEmptyPrompt，不改变任何状态；请求进行中返回 ErrBusy
func (w *Workspace) Submit(ctx context.Context) error {
	w.mu.Lock()
	if strings.TrimSpace(w.state.Prompt) == "" {
		w.mu.Unlock()
		return generator.ErrEmptyPrompt
	}
	if w.state.Status == StatusGenerating {
		w.mu.Unlock()
		return ErrBusy
	}

	w.state.Status = StatusGenerating
	w.state.ErrorMessage = ""
	w.state.Code = ""
	prompt := w.state.Prompt
	started := w.state
	w.mu.Unlock()
	w.notify(started)

	code, err := w.submitter.Submit(ctx, prompt)

	w.mu.Lock()
	if err != nil {
		w.state.Status = StatusError
		w.state.ErrorMessage = config.FailureMessage
		w.state.Code = ""
	} else {
		w.state.Status = StatusSuccess
		w.state.Code = code
	}
	settled := w.state
	w.mu.Unlock()
	w.notify(settled)

	return err
}

func (w *Workspace) notify(s Snapshot) {
	w.mu.Lock()
	observers := append([]func(Snapshot){}, w.observers...)
	w.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
