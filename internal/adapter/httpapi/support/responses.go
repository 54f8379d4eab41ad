package support

import (
	"fmt"
	"net/http"

	logutil "scriptgen/internal/adapter/httpapi/logging"
	"scriptgen/logger"
	"scriptgen/types"

	"github.com/gin-gonic/gin"
)

// 错误码
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeGenerationFailed = "generation_failed"
	CodeInternal         = "internal_error"
)

func RespondErrorWithCode(c *gin.Context, statusCode int, code string, format string, args ...any) {
	c.JSON(statusCode, types.ErrorResponse{
		Error: types.ErrorDetail{
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		},
	})
}

func RespondError(c *gin.Context, statusCode int, format string, args ...any) {
	var code string
	switch statusCode {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		code = CodeBadRequest
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusBadGateway:
		code = CodeGenerationFailed
	default:
		code = CodeInternal
	}
	RespondErrorWithCode(c, statusCode, code, format, args...)
}

// HandleGenerationError 上游失败统一返回 502 和固定文案，具体原因只写日志
func HandleGenerationError(c *gin.Context, message string, err error) {
	logger.Error("生成请求失败", logutil.AddFields(c, logger.Err(err))...)
	RespondErrorWithCode(c, http.StatusBadGateway, CodeGenerationFailed, "%s", message)
}
