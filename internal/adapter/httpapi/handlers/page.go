package handlers

import (
	"net/http"

	"scriptgen/config"
	srvcontext "scriptgen/internal/adapter/httpapi/context"
	logutil "scriptgen/internal/adapter/httpapi/logging"
	"scriptgen/internal/adapter/httpapi/request"
	"scriptgen/internal/adapter/httpapi/web"
	"scriptgen/internal/view"
	"scriptgen/logger"

	"github.com/gin-gonic/gin"
)

const pageTitle = "Cosmics Lua Script Gen"

// pageScriptConfig 页面脚本使用的文案和参数
type pageScriptConfig struct {
	GenerateLabel  string `json:"generateLabel"`
	ThinkingLabel  string `json:"thinkingLabel"`
	CopyLabel      string `json:"copyLabel"`
	CopiedLabel    string `json:"copiedLabel"`
	CopyResetMs    int64  `json:"copyResetMs"`
	FailureMessage string `json:"failureMessage"`
}

type pageData struct {
	Title           string
	Model           string
	MaxPromptLength int
	CopyLabel       string
	CopyResetMs     int64
	View            view.Snapshot
	ScriptConfig    pageScriptConfig
}

func (h *Handler) newPageData(snapshot view.Snapshot) pageData {
	idle := view.Snapshot{Status: view.StatusIdle}
	generating := view.Snapshot{Status: view.StatusGenerating}
	resetMs := config.CopyResetDelay.Milliseconds()

	return pageData{
		Title:           pageTitle,
		Model:           h.generator.Model(),
		MaxPromptLength: h.maxPromptLength,
		CopyLabel:       config.CopyLabel,
		CopyResetMs:     resetMs,
		View:            snapshot,
		ScriptConfig: pageScriptConfig{
			GenerateLabel:  idle.ButtonLabel(),
			ThinkingLabel:  generating.ButtonLabel(),
			CopyLabel:      config.CopyLabel,
			CopiedLabel:    config.CopiedLabel,
			CopyResetMs:    resetMs,
			FailureMessage: config.FailureMessage,
		},
	}
}

// handleIndex 初始页面：空提示词，占位面板
func (h *Handler) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageTemplate, h.newPageData(view.Snapshot{Status: view.StatusIdle}))
}

// handleFormGenerate 不依赖脚本的表单提交，服务端驱动一次完整的状态流转后重新渲染
func (h *Handler) handleFormGenerate(c *gin.Context) {
	prompt := c.PostForm("prompt")

	if err := request.ValidatePrompt(prompt, h.maxPromptLength); err != nil {
		logger.Debug("表单提示词未通过校验", logutil.AddFields(c, logger.Err(err))...)
		c.HTML(http.StatusBadRequest, web.PageTemplate,
			h.newPageData(view.Snapshot{Prompt: prompt, Status: view.StatusIdle}))
		return
	}

	srvcontext.SetModel(c, h.generator.Model())

	ws := view.NewWorkspace(h.generator)
	ws.SetPrompt(prompt)
	ws.OnChange(func(s view.Snapshot) {
		logger.Debug("页面状态变化", logutil.AddFields(c, logger.String("status", s.Status.String()))...)
	})

	if err := ws.Submit(c.Request.Context()); err != nil {
		logger.Warn("表单生成失败", logutil.AddFields(c, logger.Err(err))...)
	}

	c.HTML(http.StatusOK, web.PageTemplate, h.newPageData(ws.Snapshot()))
}
