package handlers

import (
	"net/http"
	"time"

	"scriptgen/config"
	srvcontext "scriptgen/internal/adapter/httpapi/context"
	logutil "scriptgen/internal/adapter/httpapi/logging"
	"scriptgen/internal/adapter/httpapi/request"
	"scriptgen/internal/adapter/httpapi/support"
	"scriptgen/internal/view"
	"scriptgen/logger"
	"scriptgen/types"

	"github.com/gin-gonic/gin"
)

// handleGenerate POST /api/generate，页面脚本调用的 JSON 接口
func (h *Handler) handleGenerate(c *gin.Context) {
	reqCtx := &request.Context{
		GinContext:      c,
		MaxPromptLength: h.maxPromptLength,
		RequestType:     "生成",
	}
	prompt, err := reqCtx.BindPrompt()
	if err != nil {
		return
	}

	model := h.generator.Model()
	srvcontext.SetModel(c, model)

	start := time.Now()
	code, err := h.generator.Submit(c.Request.Context(), prompt)
	elapsed := time.Since(start)
	if err != nil {
		support.HandleGenerationError(c, config.GenerationFailedMessage, err)
		return
	}

	logger.Info("生成请求完成",
		logutil.AddFields(c,
			logger.Duration("duration_ms", elapsed),
			logger.Int("code_length", len(code)),
		)...)

	c.JSON(http.StatusOK, types.GenerateResponse{
		Code:       code,
		Status:     view.StatusSuccess.String(),
		Model:      model,
		RequestID:  srvcontext.GetRequestID(c),
		DurationMs: elapsed.Milliseconds(),
	})
}
