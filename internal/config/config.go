package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appconfig "scriptgen/config"

	"github.com/spf13/viper"
)

// SystemConfig 运行时配置
type SystemConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	GinMode         string `mapstructure:"gin_mode"`
	MaxPromptLength int    `mapstructure:"max_prompt_length"`
}

type UpstreamConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var (
	ErrMissingAPIKey   = errors.New("未设置 API_KEY 或 GEMINI_API_KEY")
	ErrUnknownProvider = errors.New("不支持的模型服务商")
)

// envBindings 配置键与环境变量的对应关系，同一键可接受多个变量名
var envBindings = map[string][]string{
	"server.port":              {"PORT"},
	"server.gin_mode":          {"GIN_MODE"},
	"server.max_prompt_length": {"MAX_PROMPT_LENGTH"},
	"upstream.provider":        {"PROVIDER"},
	"upstream.api_key":         {"API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"},
	"upstream.base_url":        {"BASE_URL"},
	"upstream.model":           {"MODEL"},
	"upstream.request_timeout": {"REQUEST_TIMEOUT"},
	"log.level":                {"LOG_LEVEL"},
	"log.format":               {"LOG_FORMAT"},
	"log.file":                 {"LOG_FILE"},
	"log.console":              {"LOG_CONSOLE"},
	"cors.allowed_origins":     {"CORS_ALLOWED_ORIGINS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.max_prompt_length", appconfig.MaxPromptLength)
	v.SetDefault("upstream.provider", appconfig.ProviderGemini)
	v.SetDefault("upstream.model", appconfig.DefaultModel)
	v.SetDefault("upstream.request_timeout", appconfig.DefaultRequestTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.console", true)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load 加载配置：默认值 < 配置文件 < 环境变量
// configFile 为空时只读取环境变量
func Load(configFile string) (*SystemConfig, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败 %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &SystemConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *SystemConfig) normalize() {
	c.Upstream.Provider = strings.ToLower(strings.TrimSpace(c.Upstream.Provider))
	c.Upstream.APIKey = strings.TrimSpace(c.Upstream.APIKey)
	c.Upstream.Model = strings.TrimSpace(c.Upstream.Model)
	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(c.Upstream.BaseURL), "/")

	// 环境变量中的逗号分隔列表
	if len(c.CORS.AllowedOrigins) == 1 && strings.Contains(c.CORS.AllowedOrigins[0], ",") {
		c.CORS.AllowedOrigins = strings.Split(c.CORS.AllowedOrigins[0], ",")
	}
	origins := c.CORS.AllowedOrigins[:0]
	for _, origin := range c.CORS.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	c.CORS.AllowedOrigins = origins

	if c.Upstream.RequestTimeout <= 0 {
		c.Upstream.RequestTimeout = appconfig.DefaultRequestTimeout
	}
	if c.Server.MaxPromptLength <= 0 {
		c.Server.MaxPromptLength = appconfig.MaxPromptLength
	}
}

// Validate 检查生成请求所需的配置
func (c *SystemConfig) Validate() error {
	switch c.Upstream.Provider {
	case appconfig.ProviderGemini, appconfig.ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Upstream.Provider)
	}
	if c.Upstream.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Upstream.Model == "" {
		return errors.New("未设置 MODEL")
	}
	return nil
}

// ResolvedBaseURL 返回当前服务商实际使用的接口地址
func (c *SystemConfig) ResolvedBaseURL() string {
	if c.Upstream.BaseURL != "" {
		return c.Upstream.BaseURL
	}
	if c.Upstream.Provider == appconfig.ProviderOpenAI {
		return appconfig.OpenAIBaseURL
	}
	return appconfig.GeminiBaseURL
}
