package gemini

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"scriptgen/config"
	"scriptgen/internal/adapter/upstream/shared"
	"scriptgen/internal/generator"
	"scriptgen/internal/version"
	"scriptgen/logger"
	"scriptgen/types"
	"scriptgen/utils"
)

const providerName = config.ProviderGemini

// Options Gemini 客户端配置
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client 调用 Gemini generateContent 接口
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	errors  *shared.ErrorMapper
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = config.GeminiBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = utils.SharedHTTPClient
	}
	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.HTTPClient,
		errors:  shared.NewErrorMapper(providerName),
	}
}

var _ generator.Client = (*Client)(nil)

// Complete 发送一次非流式请求
func (c *Client) Complete(ctx context.Context, req generator.Request) (*generator.Result, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("构建Gemini请求失败: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, shared.TransportError(providerName, err)
	}
	defer resp.Body.Close()

	body, err := utils.ReadHTTPResponse(resp.Body)
	if err != nil {
		return nil, shared.TransportError(providerName, err)
	}

	if resp.StatusCode != http.StatusOK {
		mapped := c.errors.Map(resp.StatusCode, body)
		logger.Warn("Gemini返回错误",
			logger.Int("status_code", resp.StatusCode),
			logger.String("kind", string(mapped.Kind)),
			logger.String("status", mapped.Status))
		return nil, mapped
	}

	var geminiResp types.GeminiResponse
	if err := utils.SafeUnmarshal(body, &geminiResp); err != nil {
		return nil, shared.MalformedError(providerName, resp.StatusCode, err)
	}

	result := &generator.Result{
		Text:         geminiResp.Text(),
		Model:        req.Model,
		FinishReason: geminiResp.FinishReason(),
	}
	if geminiResp.ModelVersion != "" {
		result.Model = geminiResp.ModelVersion
	}
	if usage := geminiResp.UsageMetadata; usage != nil {
		result.InputTokens = usage.PromptTokenCount
		result.OutputTokens = usage.CandidatesTokenCount
	}

	logger.Debug("Gemini响应成功",
		logger.String("direction", "upstream_response"),
		logger.Int("response_size", len(body)),
		logger.String("finish_reason", result.FinishReason))

	return result, nil
}

func (c *Client) buildRequest(ctx context.Context, req generator.Request) (*http.Request, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("模型不能为空")
	}

	temperature := req.Temperature
	payload := types.GeminiRequest{
		Contents: []types.GeminiContent{{
			Role:  "user",
			Parts: []types.GeminiPart{{Text: req.Prompt}},
		}},
		GenerationConfig: &types.GeminiGenerationConfig{Temperature: &temperature},
	}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &types.GeminiContent{
			Parts: []types.GeminiPart{{Text: req.SystemInstruction}},
		}
	}

	body, err := utils.FastMarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	logger.Debug("发送给Gemini的请求",
		logger.String("direction", "upstream_request"),
		logger.String("model", req.Model),
		logger.Int("request_size", len(body)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(req.Model), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("User-Agent", version.UserAgent())
	return httpReq, nil
}

func (c *Client) endpoint(model string) string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent",
		c.baseURL, config.GeminiAPIVersion, url.PathEscape(model))
}
