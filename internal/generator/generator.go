package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scriptgen/config"
	"scriptgen/logger"
	"scriptgen/utils"
)

// Recorder 生成结果统计
type Recorder interface {
	Record(success bool, elapsed time.Duration, model string)
}

// Options 生成服务配置
type Options struct {
	Client   Client
	Model    string
	Timeout  time.Duration
	Recorder Recorder
}

// Service 把提示词交给上游模型并整理返回的脚本
type Service struct {
	client   Client
	model    string
	timeout  time.Duration
	recorder Recorder
}

func New(opts Options) (*Service, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("generator: client 未初始化")
	}
	if opts.Model == "" {
		opts.Model = config.DefaultModel
	}
	return &Service{
		client:   opts.Client,
		model:    opts.Model,
		timeout:  opts.Timeout,
		recorder: opts.Recorder,
	}, nil
}

// Model 当前使用的模型
func (s *Service) Model() string {
	return s.model
}

// Submit 发送一次非流式生成请求
// 空提示词返回 ErrEmptyPrompt 且不会触发请求；任何上游错误统一为 ErrGenerationFailed
func (s *Service) Submit(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.client.Complete(ctx, Request{
		Model:             s.model,
		SystemInstruction: config.SystemInstruction,
		Prompt:            prompt,
		Temperature:       config.Temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("脚本生成失败",
			logger.String("model", s.model),
			logger.Duration("elapsed_ms", elapsed),
			logger.Err(err))
		s.record(false, elapsed)
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, config.GenerationFailedMessage)
	}

	text := ""
	if result != nil {
		text = result.Text
	}
	code := Finalize(text, config.FallbackCode)

	fields := []logger.Field{
		logger.String("model", s.model),
		logger.Duration("elapsed_ms", elapsed),
		logger.Int("raw_length", len(text)),
		logger.Int("code_length", len(code)),
		logger.Bool("fallback", code == config.FallbackCode),
	}
	if result != nil {
		inputTokens := result.InputTokens
		if inputTokens == 0 {
			// 上游未返回用量时使用本地估算
			inputTokens = utils.EstimatePromptTokens(config.SystemInstruction, prompt)
			fields = append(fields, logger.Bool("tokens_estimated", true))
		}
		fields = append(fields,
			logger.String("finish_reason", result.FinishReason),
			logger.Int("input_tokens", inputTokens),
			logger.Int("output_tokens", result.OutputTokens))
	}
	logger.Info("脚本生成完成", fields...)

	s.record(true, elapsed)
	return code, nil
}

func (s *Service) record(success bool, elapsed time.Duration) {
	if s.recorder != nil {
		s.recorder.Record(success, elapsed, s.model)
	}
}
