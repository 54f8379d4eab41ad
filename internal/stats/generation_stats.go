package stats

import (
	"sort"
	"sync"
	"time"

	"scriptgen/config"
)

const hourLayout = "2006-01-02 15:00"

// HourlyStats 每小时的生成统计
type HourlyStats struct {
	Hour           string `json:"hour"` // 格式: "2026-10-19 10:00"
	RequestCount   int    `json:"request_count"`
	SuccessCount   int    `json:"success_count"`
	FailureCount   int    `json:"failure_count"`
	TotalLatencyMs int64  `json:"total_latency_ms"`
	MaxLatencyMs   int64  `json:"max_latency_ms"`
}

// AvgLatencyMs 平均耗时，没有请求时为 0
func (h HourlyStats) AvgLatencyMs() int64 {
	if h.RequestCount == 0 {
		return 0
	}
	return h.TotalLatencyMs / int64(h.RequestCount)
}

// Summary 统计汇总
type Summary struct {
	RequestCount int            `json:"request_count"`
	SuccessCount int            `json:"success_count"`
	FailureCount int            `json:"failure_count"`
	AvgLatencyMs int64          `json:"avg_latency_ms"`
	Models       map[string]int `json:"models"`
}

// Collector 生成请求统计收集器，按小时聚合
type Collector struct {
	mutex       sync.RWMutex
	hourlyStats map[string]*HourlyStats // key: "2026-10-19 10:00"
	models      map[string]int
	maxHours    int // 保留最近多少小时的数据
	now         func() time.Time
}

func NewCollector(maxHours int) *Collector {
	if maxHours <= 0 {
		maxHours = config.StatsRetentionHours
	}
	return &Collector{
		hourlyStats: make(map[string]*HourlyStats),
		models:      make(map[string]int),
		maxHours:    maxHours,
		now:         time.Now,
	}
}

// Record 记录一次生成结果，实现 generator.Recorder
func (c *Collector) Record(success bool, elapsed time.Duration, model string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	hourKey := c.now().Format(hourLayout)

	stats, exists := c.hourlyStats[hourKey]
	if !exists {
		stats = &HourlyStats{Hour: hourKey}
		c.hourlyStats[hourKey] = stats
		c.cleanup() // 清理旧数据
	}

	latency := elapsed.Milliseconds()
	stats.RequestCount++
	stats.TotalLatencyMs += latency
	if latency > stats.MaxLatencyMs {
		stats.MaxLatencyMs = latency
	}
	if success {
		stats.SuccessCount++
	} else {
		stats.FailureCount++
	}
	if model != "" {
		c.models[model]++
	}
}

// GetHourlyStats 获取最近 N 小时的统计数据，按时间升序，空缺小时补 0
func (c *Collector) GetHourlyStats(hours int) []HourlyStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if hours <= 0 || hours > c.maxHours {
		hours = c.maxHours
	}

	result := make([]HourlyStats, 0, hours)
	now := c.now()

	for i := hours - 1; i >= 0; i-- {
		hourKey := now.Add(-time.Duration(i) * time.Hour).Format(hourLayout)
		if stats, exists := c.hourlyStats[hourKey]; exists {
			result = append(result, *stats)
		} else {
			result = append(result, HourlyStats{Hour: hourKey})
		}
	}

	return result
}

// Summary 保留窗口内的总计
func (c *Collector) Summary() Summary {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var total HourlyStats
	for _, stats := range c.hourlyStats {
		total.RequestCount += stats.RequestCount
		total.SuccessCount += stats.SuccessCount
		total.FailureCount += stats.FailureCount
		total.TotalLatencyMs += stats.TotalLatencyMs
	}

	models := make(map[string]int, len(c.models))
	for model, count := range c.models {
		models[model] = count
	}

	return Summary{
		RequestCount: total.RequestCount,
		SuccessCount: total.SuccessCount,
		FailureCount: total.FailureCount,
		AvgLatencyMs: total.AvgLatencyMs(),
		Models:       models,
	}
}

// Hours 已记录数据的小时列表（升序）
func (c *Collector) Hours() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]string, 0, len(c.hourlyStats))
	for k := range c.hourlyStats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cleanup 清理超过 maxHours 的旧数据
func (c *Collector) cleanup() {
	cutoffKey := c.now().Add(-time.Duration(c.maxHours) * time.Hour).Format(hourLayout)

	for hourKey := range c.hourlyStats {
		if hourKey < cutoffKey {
			delete(c.hourlyStats, hourKey)
		}
	}
}
