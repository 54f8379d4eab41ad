package generator

import "context"

// Request 发往上游模型的一次生成请求
type Request struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       float32
}

// Result 上游返回的原始文本
type Result struct {
	Text         string
	Model        string
	FinishReason string
	InputTokens  int
	OutputTokens int
}

// Client 抽象大模型客户端，便于替换/Mock
type Client interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}

// ClientFunc 函数适配器
type ClientFunc func(ctx context.Context, req Request) (*Result, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}
