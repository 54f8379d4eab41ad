package handlers

import (
	"net/http"

	"scriptgen/internal/version"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// handleGetSystemInfo 获取系统信息
func (h *Handler) handleGetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":              version.ProjectName,
		"version":           version.Version,
		"provider":          h.provider,
		"model":             h.generator.Model(),
		"max_prompt_length": h.maxPromptLength,
	})
}
