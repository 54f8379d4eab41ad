package utils

import (
	"os"
	"strings"
)

// GetEnvBool 获取布尔类型环境变量
// 接受的true值：true, 1, yes, on（不区分大小写）
func GetEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
