package config

import "time"

// Tuning 性能和行为调优参数
const (
	// ========== HTTP客户端配置 ==========

	// HTTPClientKeepAlive HTTP客户端Keep-Alive间隔
	HTTPClientKeepAlive = 30 * time.Second

	// HTTPClientTLSHandshakeTimeout HTTP客户端TLS握手超时
	HTTPClientTLSHandshakeTimeout = 15 * time.Second

	// HTTPClientDialTimeout 建立连接超时
	HTTPClientDialTimeout = 15 * time.Second

	// DefaultRequestTimeout 单次生成请求的默认超时
	// 生成较长脚本时 pro 模型可能需要一分钟以上
	DefaultRequestTimeout = 120 * time.Second

	// ========== 服务端配置 ==========

	// HTTPServerReadHeaderTimeout 读取请求头超时
	HTTPServerReadHeaderTimeout = 10 * time.Second

	// ShutdownTimeout 优雅关闭的最长等待时间
	ShutdownTimeout = 5 * time.Second

	// StatsRetentionHours 统计数据保留小时数
	StatsRetentionHours = 24
)
