package utils

import (
	"scriptgen/config"

	"github.com/google/uuid"
)

// GenerateUUID 生成随机UUID（v4）
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateRequestID 生成带前缀的请求ID
func GenerateRequestID() string {
	return config.RequestIDPrefix + GenerateUUID()
}
