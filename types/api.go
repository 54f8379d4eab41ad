package types

// GenerateRequest POST /api/generate 请求体
type GenerateRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
}

// GenerateResponse POST /api/generate 响应体
type GenerateResponse struct {
	Code       string `json:"code"`
	Status     string `json:"status"`
	Model      string `json:"model"`
	RequestID  string `json:"request_id,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
