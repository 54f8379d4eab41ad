package shared

import (
	"fmt"
	"net/http"
	"strings"

	"scriptgen/logger"
	"scriptgen/types"
	"scriptgen/utils"
)

// ErrorKind 上游错误分类，只用于日志和统计，不对用户区分
type ErrorKind string

const (
	KindAuth           ErrorKind = "auth"
	KindQuota          ErrorKind = "quota"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindServer         ErrorKind = "server"
	KindTransport      ErrorKind = "transport"
	KindMalformed      ErrorKind = "malformed_response"
	KindUnknown        ErrorKind = "unknown"
)

// UpstreamError 上游返回的错误
type UpstreamError struct {
	Provider   string
	StatusCode int
	Kind       ErrorKind
	Status     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s upstream %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s upstream %s (HTTP %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
}

type ErrorMappingStrategy interface {
	MapError(statusCode int, responseBody []byte) (*UpstreamError, bool)
	GetErrorType() string
}

// InvalidAPIKeyStrategy Google 对无效 key 返回 400，这里归为认证错误
type InvalidAPIKeyStrategy struct{}

func (s *InvalidAPIKeyStrategy) MapError(statusCode int, responseBody []byte) (*UpstreamError, bool) {
	if statusCode != http.StatusBadRequest {
		return nil, false
	}
	body := string(responseBody)
	if !strings.Contains(body, "API_KEY_INVALID") && !strings.Contains(body, "API key not valid") {
		return nil, false
	}
	return &UpstreamError{
		StatusCode: statusCode,
		Kind:       KindAuth,
		Status:     "API_KEY_INVALID",
		Message:    "API key not valid",
	}, true
}

func (s *InvalidAPIKeyStrategy) GetErrorType() string {
	return "invalid_api_key"
}

// GoogleErrorStrategy 解析 {"error":{"code","message","status"}}
type GoogleErrorStrategy struct{}

func (s *GoogleErrorStrategy) MapError(statusCode int, responseBody []byte) (*UpstreamError, bool) {
	var body types.GeminiErrorBody
	if err := utils.SafeUnmarshal(responseBody, &body); err != nil || body.Error.Message == "" {
		return nil, false
	}

	kind := kindFromGoogleStatus(body.Error.Status)
	if kind == KindUnknown {
		kind = KindFromStatusCode(statusCode)
	}
	return &UpstreamError{
		StatusCode: statusCode,
		Kind:       kind,
		Status:     body.Error.Status,
		Message:    body.Error.Message,
	}, true
}

func (s *GoogleErrorStrategy) GetErrorType() string {
	return "google_error"
}

type DefaultErrorStrategy struct{}

func (s *DefaultErrorStrategy) MapError(statusCode int, responseBody []byte) (*UpstreamError, bool) {
	return &UpstreamError{
		StatusCode: statusCode,
		Kind:       KindFromStatusCode(statusCode),
		Message:    fmt.Sprintf("Upstream error: %s", truncate(string(responseBody), 512)),
	}, true
}

func (s *DefaultErrorStrategy) GetErrorType() string {
	return "default"
}

type ErrorMapper struct {
	provider   string
	strategies []ErrorMappingStrategy
}

func NewErrorMapper(provider string) *ErrorMapper {
	return &ErrorMapper{
		provider: provider,
		strategies: []ErrorMappingStrategy{
			&InvalidAPIKeyStrategy{},
			&GoogleErrorStrategy{},
			&DefaultErrorStrategy{},
		},
	}
}

// Map 依次尝试各策略，第一个命中的生效
func (em *ErrorMapper) Map(statusCode int, responseBody []byte) *UpstreamError {
	for _, strategy := range em.strategies {
		if mapped, handled := strategy.MapError(statusCode, responseBody); handled {
			mapped.Provider = em.provider
			logger.Debug("错误映射成功",
				logger.String("provider", em.provider),
				logger.String("strategy", strategy.GetErrorType()),
				logger.Int("status_code", statusCode),
				logger.String("mapped_kind", string(mapped.Kind)))
			return mapped
		}
	}

	return &UpstreamError{
		Provider:   em.provider,
		StatusCode: statusCode,
		Kind:       KindUnknown,
		Message:    "Unknown error",
	}
}

// TransportError 请求未到达上游或响应无法读取
func TransportError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Kind: KindTransport, Message: err.Error()}
}

// MalformedError 响应体无法解析
func MalformedError(provider string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, StatusCode: statusCode, Kind: KindMalformed, Message: err.Error()}
}

// KindFromStatusCode 按HTTP状态码分类
func KindFromStatusCode(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return KindAuth
	case statusCode == http.StatusTooManyRequests:
		return KindQuota
	case statusCode >= 400 && statusCode < 500:
		return KindInvalidRequest
	case statusCode >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func kindFromGoogleStatus(status string) ErrorKind {
	switch status {
	case "UNAUTHENTICATED", "PERMISSION_DENIED":
		return KindAuth
	case "RESOURCE_EXHAUSTED":
		return KindQuota
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION", "NOT_FOUND":
		return KindInvalidRequest
	case "INTERNAL", "UNAVAILABLE", "DEADLINE_EXCEEDED":
		return KindServer
	default:
		return KindUnknown
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
