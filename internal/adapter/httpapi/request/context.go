package request

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	logutil "scriptgen/internal/adapter/httpapi/logging"
	"scriptgen/internal/adapter/httpapi/support"
	"scriptgen/logger"
	"scriptgen/types"
	"scriptgen/utils"

	"github.com/gin-gonic/gin"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrPromptTooLong  = errors.New("prompt is too long")
)

// ValidatePrompt 空白提示词或超过 maxLength 个字符时返回错误，maxLength<=0 不限制长度
func ValidatePrompt(prompt string, maxLength int) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrPromptRequired
	}
	if maxLength > 0 && utf8.RuneCountInString(prompt) > maxLength {
		return fmt.Errorf("%w: limit is %d characters", ErrPromptTooLong, maxLength)
	}
	return nil
}

// 请求体上限：每个字符最多按 12 字节的 JSON 转义计算，再加上信封的余量
const (
	bytesPerPromptRune = 12
	bodyOverhead       = 1024
)

// MaxBodyBytes 返回 maxPromptLength 对应的请求体字节上限，maxPromptLength<=0 时不限制
func MaxBodyBytes(maxPromptLength int) int64 {
	if maxPromptLength <= 0 {
		return 0
	}
	return int64(maxPromptLength)*bytesPerPromptRune + bodyOverhead
}

type Context struct {
	GinContext      *gin.Context
	MaxPromptLength int
	RequestType     string
}

// BindPrompt 从 JSON 或表单读取 prompt 并校验，失败时已写入 400 响应
func (rc *Context) BindPrompt() (string, error) {
	c := rc.GinContext

	if limit := MaxBodyBytes(rc.MaxPromptLength); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	var req types.GenerateRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		body, err := c.GetRawData()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Warn("请求体过大", logutil.AddFields(c, logger.Int64("limit", tooLarge.Limit))...)
				support.RespondError(c, http.StatusRequestEntityTooLarge, "request body too large")
				return "", err
			}
			logger.Error("读取请求体失败", logutil.AddFields(c, logger.Err(err))...)
			support.RespondError(c, http.StatusBadRequest, "读取请求体失败: %v", err)
			return "", err
		}
		if err := utils.SafeUnmarshal(body, &req); err != nil {
			logger.Warn("请求体不是合法JSON", logutil.AddFields(c, logger.Err(err))...)
			support.RespondError(c, http.StatusBadRequest, "invalid JSON body")
			return "", err
		}
	} else {
		req.Prompt = c.PostForm("prompt")
	}

	logger.Debug(fmt.Sprintf("收到%s请求", rc.RequestType),
		logutil.AddFields(c,
			logger.String("direction", "client_request"),
			logger.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
			logger.String("remote_addr", c.ClientIP()),
			logger.String("user_agent", c.GetHeader("User-Agent")),
		)...)

	if err := ValidatePrompt(req.Prompt, rc.MaxPromptLength); err != nil {
		support.RespondError(c, http.StatusBadRequest, "%s", err.Error())
		return "", err
	}

	return req.Prompt, nil
}
