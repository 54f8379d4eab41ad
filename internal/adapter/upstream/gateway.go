package upstream

import (
	"fmt"
	"net/http"

	appconfig "scriptgen/config"
	"scriptgen/internal/adapter/upstream/gemini"
	"scriptgen/internal/adapter/upstream/openai"
	"scriptgen/internal/config"
	"scriptgen/internal/generator"
	"scriptgen/logger"
	"scriptgen/utils"
)

// Option 网关可选参数
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient 替换默认共享客户端，测试时指向 httptest 服务
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// New 按配置选择上游服务商
func New(cfg *config.SystemConfig, opts ...Option) (generator.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("upstream: 配置为空")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{httpClient: utils.SharedHTTPClient}
	for _, opt := range opts {
		opt(o)
	}

	provider := cfg.Upstream.Provider
	baseURL := cfg.ResolvedBaseURL()

	if !appconfig.IsKnownModel(provider, cfg.Upstream.Model) {
		logger.Warn("模型不在已知列表中，仍按配置请求",
			logger.String("provider", provider),
			logger.String("model", cfg.Upstream.Model))
	}

	logger.Info("上游服务商已选择",
		logger.String("provider", provider),
		logger.String("model", cfg.Upstream.Model),
		logger.String("base_url", baseURL))

	switch provider {
	case appconfig.ProviderOpenAI:
		return openai.NewClient(openai.Options{
			APIKey:     cfg.Upstream.APIKey,
			BaseURL:    baseURL,
			HTTPClient: o.httpClient,
		}), nil
	default:
		return gemini.NewClient(gemini.Options{
			APIKey:     cfg.Upstream.APIKey,
			BaseURL:    baseURL,
			HTTPClient: o.httpClient,
		}), nil
	}
}
