package runtime

import (
	"context"
	"fmt"
	"net/http"

	"scriptgen/internal/adapter/httpapi"
	"scriptgen/internal/adapter/upstream"
	"scriptgen/internal/config"
	"scriptgen/internal/generator"
	"scriptgen/internal/stats"
	"scriptgen/internal/version"
	"scriptgen/logger"
)

type Options struct {
	Config *config.SystemConfig
	// HTTPClient 为空时使用共享客户端
	HTTPClient *http.Client
}

type Runtime struct {
	server    *httpapi.Server
	generator *generator.Service
	stats     *stats.Collector
	cfg       *config.SystemConfig
}

// NewGenerator 只构建生成服务，CLI 的 generate 命令直接使用
func NewGenerator(opts Options, recorder generator.Recorder) (*generator.Service, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("配置未加载")
	}

	var upstreamOpts []upstream.Option
	if opts.HTTPClient != nil {
		upstreamOpts = append(upstreamOpts, upstream.WithHTTPClient(opts.HTTPClient))
	}

	client, err := upstream.New(opts.Config, upstreamOpts...)
	if err != nil {
		return nil, fmt.Errorf("创建上游客户端失败: %w", err)
	}

	return generator.New(generator.Options{
		Client:   client,
		Model:    opts.Config.Upstream.Model,
		Timeout:  opts.Config.Upstream.RequestTimeout,
		Recorder: recorder,
	})
}

func New(opts Options) (*Runtime, error) {
	collector := stats.NewCollector(0)

	svc, err := NewGenerator(opts, collector)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	server, err := httpapi.New(httpapi.Options{
		Port:            cfg.Server.Port,
		GinMode:         cfg.Server.GinMode,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		MaxPromptLength: cfg.Server.MaxPromptLength,
		Provider:        cfg.Upstream.Provider,
		Generator:       svc,
		Stats:           collector,
	})
	if err != nil {
		return nil, fmt.Errorf("创建HTTP服务器失败: %w", err)
	}

	return &Runtime{
		server:    server,
		generator: svc,
		stats:     collector,
		cfg:       cfg,
	}, nil
}

func (a *Runtime) Run(ctx context.Context) error {
	logger.Info("启动"+version.GetVersionInfo(),
		logger.String("port", a.server.Port()),
		logger.String("provider", a.cfg.Upstream.Provider),
		logger.String("model", a.generator.Model()),
		logger.String("api_key", "***"))
	logger.Info("可用端点:")
	logger.Info("  GET  /                - 脚本生成页面")
	logger.Info("  POST /generate        - 表单提交（无脚本环境）")
	logger.Info("  POST /api/generate    - JSON 生成接口")
	logger.Info("  GET  /api/stats       - 生成统计")
	logger.Info("  GET  /api/info        - 服务信息")
	logger.Info("  GET  /health          - 健康检查")
	logger.Info("按Ctrl+C停止服务器")

	return a.server.Start(ctx)
}

func (a *Runtime) Generator() *generator.Service {
	return a.generator
}

func (a *Runtime) Stats() *stats.Collector {
	return a.stats
}

func (a *Runtime) Server() *httpapi.Server {
	return a.server
}
