package handlers

import (
	"net/http"
	"strconv"

	"scriptgen/config"
	"scriptgen/internal/stats"

	"github.com/gin-gonic/gin"
)

// handleGetStats 获取生成请求统计
func (h *Handler) handleGetStats(c *gin.Context) {
	// 获取小时数参数，默认保留窗口
	hours, err := strconv.Atoi(c.DefaultQuery("hours", strconv.Itoa(config.StatsRetentionHours)))
	if err != nil || hours < 1 || hours > config.StatsRetentionHours {
		hours = config.StatsRetentionHours
	}

	if h.stats == nil {
		c.JSON(http.StatusOK, gin.H{
			"hourly_stats": []stats.HourlyStats{},
			"summary":      stats.Summary{Models: map[string]int{}},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hourly_stats": h.stats.GetHourlyStats(hours),
		"summary":      h.stats.Summary(),
	})
}
