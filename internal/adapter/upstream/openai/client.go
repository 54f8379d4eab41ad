package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"scriptgen/config"
	"scriptgen/internal/adapter/upstream/shared"
	"scriptgen/internal/generator"
	"scriptgen/logger"

	openai "github.com/sashabaranov/go-openai"
)

const providerName = config.ProviderOpenAI

// Options OpenAI 兼容接口配置
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client 通过 chat completions 接口生成脚本，可对接 Gemini 的 OpenAI 兼容端点
type Client struct {
	client *openai.Client
}

func NewClient(opts Options) *Client {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		clientConfig.HTTPClient = opts.HTTPClient
	}
	return &Client{client: openai.NewClientWithConfig(clientConfig)}
}

var _ generator.Client = (*Client)(nil)

// Complete 系统指令 + 用户提示词，单次非流式调用
func (c *Client) Complete(ctx context.Context, req generator.Request) (*generator.Result, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	logger.Debug("发送给OpenAI兼容接口的请求",
		logger.String("direction", "upstream_request"),
		logger.String("model", req.Model),
		logger.Int("messages", len(messages)))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, mapError(err)
	}

	result := &generator.Result{
		Model:        req.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	if resp.Model != "" {
		result.Model = resp.Model
	}
	if len(resp.Choices) > 0 {
		result.Text = resp.Choices[0].Message.Content
		result.FinishReason = string(resp.Choices[0].FinishReason)
	}
	return result, nil
}

// mapError 把 go-openai 的错误类型转换为统一的上游错误
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := shared.KindFromStatusCode(apiErr.HTTPStatusCode)
		if apiErr.Type == "insufficient_quota" {
			kind = shared.KindQuota
		}
		return &shared.UpstreamError{
			Provider:   providerName,
			StatusCode: apiErr.HTTPStatusCode,
			Kind:       kind,
			Status:     apiErr.Type,
			Message:    apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &shared.UpstreamError{
			Provider:   providerName,
			StatusCode: reqErr.HTTPStatusCode,
			Kind:       shared.KindFromStatusCode(reqErr.HTTPStatusCode),
			Status:     reqErr.HTTPStatus,
			Message:    reqErr.Error(),
		}
	}

	return shared.TransportError(providerName, err)
}
