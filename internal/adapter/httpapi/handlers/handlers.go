package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	logutil "scriptgen/internal/adapter/httpapi/logging"
	"scriptgen/internal/adapter/httpapi/support"
	"scriptgen/internal/adapter/httpapi/web"
	"scriptgen/internal/stats"
	"scriptgen/logger"

	"github.com/gin-gonic/gin"
)

// Generator 生成服务，generator.Service 实现了该接口
type Generator interface {
	Submit(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Options struct {
	Generator       Generator
	Stats           *stats.Collector
	Provider        string
	MaxPromptLength int
}

type Handler struct {
	generator       Generator
	stats           *stats.Collector
	provider        string
	maxPromptLength int
	tmpl            *template.Template
}

func New(opts Options) (*Handler, error) {
	if opts.Generator == nil {
		return nil, errors.New("Generator 未初始化")
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}

	return &Handler{
		generator:       opts.Generator,
		stats:           opts.Stats,
		provider:        opts.Provider,
		maxPromptLength: opts.MaxPromptLength,
		tmpl:            tmpl,
	}, nil
}

func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(h.tmpl)
	r.StaticFS("/static", web.Static())

	// 健康检查端点（用于 Docker healthcheck）
	r.GET("/health", h.handleHealth)

	r.GET("/", h.handleIndex)
	r.POST("/generate", h.handleFormGenerate)

	r.POST("/api/generate", h.handleGenerate)
	r.GET("/api/stats", h.handleGetStats)
	r.GET("/api/info", h.handleGetSystemInfo)

	r.NoRoute(func(c *gin.Context) {
		logger.Warn("访问未知端点",
			logutil.AddFields(c,
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)...)
		support.RespondError(c, http.StatusNotFound, "404 未找到: %s", c.Request.URL.Path)
	})
}
